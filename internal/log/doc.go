// Package log provides the slog setup shared by the locators commands.
//
// RedactingHandler wraps any slog.Handler and rewrites attributes before
// they are emitted:
//   - values of credential-like keys (token, password, secret, ...) are
//     replaced with MaskValue
//   - values that look like credentials (bearer tokens, JWTs, private key
//     blocks) are replaced regardless of key
//   - paths under the user's home directory are shortened to "~"
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//
//	logger.Info("wrote output", "path", "/home/me/app/src/Task.jsx")
//	// path=~/app/src/Task.jsx
package log
