package web

import (
	"net/http"

	"github.com/smartystreets/rabbitstream"
	"github.com/smartystreets/rabbitstream/status"
)

type streamHandler struct {
	name   string
	loop   rabbitstream.Loop
	logger rabbitstream.Logger
}

// NewStreamHandler runs the loop for as long as the client keeps the response open, streaming each
// status event as a line of HTML. Every request gets its own broker connection.
func NewStreamHandler(name string, loop rabbitstream.Loop, logger rabbitstream.Logger) http.Handler {
	return streamHandler{name: name, loop: loop, logger: logger}
}

func (this streamHandler) ServeHTTP(response http.ResponseWriter, request *http.Request) {
	if request.Method != http.MethodGet {
		response.Header().Set("Allow", http.MethodGet)
		http.Error(response, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	headers := response.Header()
	headers.Set("Content-Type", "text/html; charset=utf-8")
	headers.Set("Cache-Control", "no-cache")
	headers.Set("X-Content-Type-Options", "nosniff")
	response.WriteHeader(http.StatusOK)

	sink := status.Multiplex(
		status.NewHTMLWriter(response),
		status.NewLogSink(this.logger, this.name),
	)

	this.logger.Printf("[INFO] Stream [%s] opened for [%s].", this.name, request.RemoteAddr)
	err := this.loop.Run(request.Context(), sink)
	this.logger.Printf("[INFO] Stream [%s] closed for [%s]: %v", this.name, request.RemoteAddr, err)
}
