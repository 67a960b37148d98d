package web

import (
	"io"
	"net/http"

	"github.com/smartystreets/rabbitstream"
)

type Routes struct {
	Publisher rabbitstream.Loop
	Consumer  rabbitstream.Loop
	Metrics   http.Handler
	Logger    rabbitstream.Logger
}

func NewRouter(routes Routes) *http.ServeMux {
	router := http.NewServeMux()
	router.Handle("/write", NewStreamHandler("write", routes.Publisher, routes.Logger))
	router.Handle("/read", NewStreamHandler("read", routes.Consumer, routes.Logger))
	if routes.Metrics != nil {
		router.Handle("/metrics", routes.Metrics)
	}
	router.HandleFunc("/", index)
	return router
}

func index(response http.ResponseWriter, request *http.Request) {
	if request.URL.Path != "/" {
		http.NotFound(response, request)
		return
	}

	response.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(response, indexPage)
}

const indexPage = `<html><body>
<a href="/write">/write</a> publishes a message every few seconds.<br />
<a href="/read">/read</a> consumes and acknowledges each message.<br />
</body></html>
`
