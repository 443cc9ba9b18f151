// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the process command line into a [StructuredConfig].
//
// Flags:
//
//	-a webhook listen address in format [host]:[port]
//	-r remote record store address
//	-m remote transport mode (http|memory)
//	-d local database DSN
//	-c/-config json file path with configs
//	-scope database scope (private|public)
//	-types comma separated syncable type ids
//	-batch-size records per remote write
//	-page-size changes per feed page
//	-retry-attempts max retries of transient failures
//	-request-timeout remote request timeout (e.g., "30s", "1m")
//	-poll-interval periodic pull interval (e.g., "5m")
//	-log-file rotated log file path
func ParseFlags() (*StructuredConfig, error) {
	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	return parseFlags(fs, os.Args[1:])
}

func parseFlags(fs *flag.FlagSet, args []string) (*StructuredConfig, error) {
	var listenAddress NetAddress
	var remoteAddress string
	var mode string
	var databaseDSN string
	var jsonConfigPath string
	var scope string
	var types string
	var batchSize, pageSize, retryAttempts int
	var requestTimeout, pollInterval time.Duration
	var logFile string

	fs.Var(&listenAddress, "a", "Webhook listen address host:port")
	fs.StringVar(&remoteAddress, "r", "", "Remote record store address")
	fs.StringVar(&mode, "m", "", "Remote transport mode (http|memory)")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&scope, "scope", "", "Database scope (private|public)")
	fs.StringVar(&types, "types", "", "Comma separated syncable type ids")
	fs.IntVar(&batchSize, "batch-size", 0, "Records per remote write")
	fs.IntVar(&pageSize, "page-size", 0, "Changes per feed page")
	fs.IntVar(&retryAttempts, "retry-attempts", 0, "Max retries of transient failures")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Remote request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&pollInterval, "poll-interval", 0, "Periodic pull interval (e.g., 5m)")
	fs.StringVar(&logFile, "log-file", "", "Rotated log file path")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	var typeList []string
	if types != "" {
		typeList = strings.Split(types, ",")
	}

	return &StructuredConfig{
		Engine: Engine{
			Scope:            scope,
			Types:            typeList,
			BatchSize:        batchSize,
			PageSize:         pageSize,
			RetryMaxAttempts: retryAttempts,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Adapter: Adapter{
			Mode:           mode,
			HTTPAddress:    remoteAddress,
			RequestTimeout: requestTimeout,
		},
		Server: Server{
			HTTPAddress: listenAddress.String(),
		},
		Workers: Workers{
			PollInterval: pollInterval,
		},
		Log: Log{
			File: logFile,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
func (a *NetAddress) Set(s string) error {
	host, portString, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portString)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be between 1 and 65535")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
