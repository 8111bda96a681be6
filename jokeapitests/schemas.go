package jokeapitests

import (
	"embed"

	"github.com/jokeapi-tests/jokeapi-contract-tests/httpcase"
)

//go:embed schemas/*.json
var schemaFiles embed.FS

var (
	pingSchema = loadSchema("ping")
	infoSchema = loadSchema("info")
	jokeSchema = loadSchema("joke")
)

func loadSchema(name string) *httpcase.Schema {
	data, err := schemaFiles.ReadFile("schemas/" + name + ".json")
	if err != nil {
		panic(err)
	}
	return httpcase.MustCompileSchema(name, string(data))
}
