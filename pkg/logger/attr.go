package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// Returns an empty Attr when err is nil.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// InstructorID records the acting instructor's identifier.
func InstructorID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("instructor_id", id)
}

// App records the application name a permission decision concerns.
func App(name any) slog.Attr {
	if name == nil {
		return slog.Attr{}
	}
	return slog.Any("app", name)
}
