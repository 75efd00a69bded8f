// Package common holds the ambient helpers shared by every protocol
// package: structured logging, secure randomness, modular arithmetic and
// the collision-resistant hashing used throughout the CPI.
package common

import (
	golog "github.com/ipfs/go-log"
)

// Logger is the package-wide structured logger for the core. Every
// protocol package logs through this single subsystem so that log level
// can be controlled from one place: golog.SetLogLevel("tss-core", "info").
var Logger = golog.Logger("tss-core")
