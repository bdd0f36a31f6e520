// Package logx configures go2slack's structured logging.
//
// This repo uses a small wrapper (logx.Logger) on top of zerolog to keep
// console output readable (short timestamp + short caller) while sinks stay
// structured. Every diagnostic the library emits goes through this package,
// so hosts can silence it wholesale with Nop().
package logx
