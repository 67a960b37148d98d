package status

import "github.com/smartystreets/rabbitstream"

type multiplexSink []rabbitstream.StatusSink

// Multiplex reports each event to every non-nil sink, in order.
func Multiplex(sinks ...rabbitstream.StatusSink) rabbitstream.StatusSink {
	return multiplexSink(cleanList(sinks))
}
func cleanList(raw []rabbitstream.StatusSink) (cleaned []rabbitstream.StatusSink) {
	for _, item := range raw {
		if item != nil {
			cleaned = append(cleaned, item)
		}
	}
	return cleaned
}

func (this multiplexSink) Report(event rabbitstream.StatusEvent) {
	for _, sink := range this {
		sink.Report(event)
	}
}
