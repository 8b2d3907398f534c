package param

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/gorilla/schema"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.SetAliasTag("json")
	decoder.IgnoreUnknownKeys(true)
	govalidator.SetFieldsRequiredByDefault(false)
}

// Binding fill v from the query string and the json body, then validate it
func Binding(r *http.Request, v interface{}) error {
	if err := decoder.Decode(v, r.URL.Query()); err != nil {
		return err
	}

	if r.Body != nil && r.Body != http.NoBody && isJSON(r) {
		if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
	}

	_, err := govalidator.ValidateStruct(v)
	return err
}

func isJSON(r *http.Request) bool {
	typ := r.Header.Get("Content-Type")
	return typ == "" || strings.HasPrefix(typ, "application/json")
}
