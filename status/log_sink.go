package status

import "github.com/smartystreets/rabbitstream"

type logSink struct {
	logger rabbitstream.Logger
	name   string
}

func NewLogSink(logger rabbitstream.Logger, name string) rabbitstream.StatusSink {
	return logSink{logger: logger, name: name}
}

func (this logSink) Report(event rabbitstream.StatusEvent) {
	this.logger.Printf("%s [%s] %s", level(event.Severity), this.name, event.Message)
}
func level(severity rabbitstream.Severity) string {
	switch severity {
	case rabbitstream.SeverityWarning:
		return "[WARN]"
	case rabbitstream.SeverityError:
		return "[ERROR]"
	default:
		return "[INFO]"
	}
}
