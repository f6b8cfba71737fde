package http

import (
	"net/http"

	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/idx"
)

// pathIDs reads the named path parameters as ULIDs. Anything that is not a
// ULID cannot name a stored record, so it is answered with a 404 here and
// ok is false.
func pathIDs(w http.ResponseWriter, r *http.Request, names ...string) (ids []string, ok bool) {
	ids = make([]string, len(names))
	for i, name := range names {
		id, err := idx.Parse(r.PathValue(name))
		if err != nil {
			httpx.WriteMessage(w, http.StatusNotFound, "not found")
			return nil, false
		}
		ids[i] = id.String()
	}
	return ids, true
}
