// Copyright 2026 The Sealcheck Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logging builds the loggers used by the checker.
package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Levels understood by New, as set with SEALCHECK_DEBUG=log=N.
const (
	Off   = 0
	Info  = 1
	Debug = 2
)

// New returns a logger writing human-readable lines to w. A level of Off or
// less returns a no-op logger.
func New(level int, w io.Writer) *zap.Logger {
	if level <= Off || w == nil {
		return zap.NewNop()
	}
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	cfg.CallerKey = ""
	enc := zapcore.NewConsoleEncoder(cfg)

	lvl := zapcore.InfoLevel
	if level >= Debug {
		lvl = zapcore.DebugLevel
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(w), lvl)
	return zap.New(core).Named("sealcheck")
}

// OrNop returns l, or a no-op logger if l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
