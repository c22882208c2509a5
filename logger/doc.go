/*
Package logger provides logging functionality to roadtrip by defining the required behavior in [Logger]
and providing an implementation of it with [DefaultLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
LogLevel is the type to use to represent those levels.
An implementation of Logger may be initialized at a certain [LogLevel]
and only emit messages at or above that level of importance.
For example, [DefaultLogger] accepts a [LogLevel],
and if initialized with [LogLevelWarn],
only Warn, Error, and Fatal produce messages.

# DefaultLogger

The [DefaultLogger] is the implementation of [Logger] returned by the [New] function.

Log messages emitted by [DefaultLogger] are composed of a few parts:
	- timestamp
	- log level
	- call site
	- message
	- log context

Here's an example:
	2022/04/28 15:55:21 [WARN] handler/trip.go:43 'creating trip for another user' log_context: {"user":{"displayName":"Ada","id":"1234"}}

The file, line number, and parent directory of where a [DefaultLogger] was called comprise the call site.
The message is the actual string passed into the [DefaultLogger] method, in this example, [*DefaultLogger.Warn].
Lastly, the log context is a JSON-encoded [*LogContext].
The last component allows for including additional data inessential to the message proper,
but provides a fuller picture of the application state at the time of logging.

# SentryLogger

When SENTRY_DSN is set, [New] returns a [SentryLogger].
It logs like a [DefaultLogger] and additionally ships any [LogContext.Error] logged at WARN or above to Sentry.

# SkipLogger

Sometimes, especially with internal packages, the file and line number in a log needs to be configurable.
[SkipLogger] provides additional configuration functionality by setting the number of frames to skip
back in order to reach the desired caller.
*/
package logger
