package jsdom

import "log/slog"

// printer sends host console output to a slog logger.
type printer struct {
	logger *slog.Logger
}

func (p printer) Log(s string) {
	p.logger.Info(s, "source", "console")
}

func (p printer) Warn(s string) {
	p.logger.Warn(s, "source", "console")
}

func (p printer) Error(s string) {
	p.logger.Error(s, "source", "console")
}
