package httpcase

import (
	"net/http"
	"strings"

	"github.com/alessio/shellescape"
)

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// CurlCommand renders a request as an equivalent curl command line, so that a failing
// request can be repeated by hand.
func CurlCommand(method, url string, header http.Header, body []byte) string {
	var b commandBuilder
	b.add("curl", "-X", method)
	names := make(map[string]string, len(header))
	for name, values := range header {
		names[name] = strings.Join(values, ", ")
	}
	for _, name := range sortedKeys(names) {
		b.add("-H", name+": "+names[name])
	}
	if len(body) != 0 {
		b.add("--data", string(body))
	}
	b.add(url)
	return b.String()
}
