package status

import (
	"fmt"
	"html"
	"io"

	"github.com/smartystreets/rabbitstream"
)

type flusher interface {
	Flush()
}

type htmlWriter struct {
	writer  io.Writer
	flusher flusher
}

// NewHTMLWriter renders each event as a line of HTML. When the writer can be flushed (e.g. an
// http.ResponseWriter) it is flushed after every event.
func NewHTMLWriter(writer io.Writer) rabbitstream.StatusSink {
	flusher, _ := writer.(flusher)
	return htmlWriter{writer: writer, flusher: flusher}
}

func (this htmlWriter) Report(event rabbitstream.StatusEvent) {
	_, _ = io.WriteString(this.writer, renderHTML(event))
	if this.flusher != nil {
		this.flusher.Flush()
	}
}

func renderHTML(event rabbitstream.StatusEvent) string {
	message := html.EscapeString(event.Message)

	switch event.Severity {
	case rabbitstream.SeverityConnection:
		return renderConnection(event.Endpoint, message)
	case rabbitstream.SeverityWarning:
		return fmt.Sprintf("<font color = 'orange'> %s </font> <br />\n", message)
	case rabbitstream.SeverityError:
		return fmt.Sprintf("<font color = 'red'> %s </font> <br />\n", message)
	default:
		return fmt.Sprintf("%s <br />\n", message)
	}
}
func renderConnection(endpoint int, message string) string {
	if endpoint < 0 || endpoint >= len(endpointColors) {
		return fmt.Sprintf("<b> %s </b><br />\n", message)
	}

	return fmt.Sprintf("<b><font color = '%s'> %s </font></b> <br />\n", endpointColors[endpoint], message)
}

var endpointColors = []string{"DarkMagenta", "DarkSalmon", "DarkViolet"}
