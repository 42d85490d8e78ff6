// Package logger provides a small leveled, typed console logger that renders
// each record through a user-configurable template.
//
// # Records
//
// Every record carries a Level (DEBUG, RELEASE, INFO, WARNING, ERROR, TRACE,
// UNKNOWN) and a Type (NETWORK, ACTION, PARSING, LOAD, PLAYER, WEB, VIEW,
// DOWNLOAD, UNKNOWN). The call site is captured automatically.
//
// # Template
//
// The format string may contain these tokens, each replaced on every
// occurrence:
//
//	{$level}     level label
//	{$type}      type label
//	{$time}      local time as "15:04:05.000 "
//	{$function}  calling function (package.Function)
//	{$file}      calling file
//	{$line}      calling line
//	{$message}   the message, verbatim
//
// Unknown tokens are left as they are. DefaultFormat and CompactFormat are
// provided.
//
// # Usage
//
// Create an engine and log:
//
//	log := logger.New(logger.Config{Format: logger.CompactFormat})
//	log.Log(logger.InfoLevel, logger.NetworkType, "connected")
//	log.Warnf(logger.LoadType, "retrying %s", name)
//
// Suppress noisy categories:
//
//	log.SetIgnoreType(logger.PlayerType, false)
//	log.SetIgnoreLevel(logger.TraceLevel, false)
//
// Route warnings and errors elsewhere:
//
//	log.SetErrorHandler(func(msg string) { alerts <- msg })
//
// Package-level functions use a default engine replaced by Init.
//
// # Configuration
//
// Config may be built in code, loaded with LoadConfig from YAML, TOML or
// JSON5, and reloaded on change with Engine.Watch. HELOG_FORMAT,
// HELOG_IGNORE_LEVELS and HELOG_IGNORE_TYPES fill unset fields.
//
// # Release builds
//
// Building with -tags release makes Enabled false and every logging call a
// no-op. Configuration calls keep working.
//
// When stdout is connected to the systemd journal each line is prefixed with
// its syslog priority.
package logger
