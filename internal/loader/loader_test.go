package loader

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileServer serves a manifest plus named study documents over HTTP.
func fileServer(t *testing.T, docs map[string]string) *httptest.Server {
	t.Helper()

	files := make([]string, 0, len(docs))
	for name := range docs {
		files = append(files, name)
	}
	manifest, err := json.Marshal(Manifest{Files: files, TotalFiles: len(files)})
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("/"+ManifestName, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(manifest)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		doc, ok := docs[r.URL.Path[1:]]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(doc))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func httpSource(t *testing.T, srv *httptest.Server) *HTTPSource {
	t.Helper()
	src, err := NewHTTPSource(srv.URL, HTTPOptions{})
	require.NoError(t, err)
	return src
}

func TestLoad_FSSourceKeepsManifestOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.json", `{"studyId":"study-b"}`)
	writeFile(t, dir, "a.json", `{"studyId":"study-a"}`)
	_, err := WriteManifest(dir)
	require.NoError(t, err)

	records, err := Load(t.Context(), NewFSSource(dir), Options{})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "study-a", records[0].ID)
	assert.Equal(t, "study-b", records[1].ID)
}

func TestLoad_HTTPPartialFailureDropsRecord(t *testing.T) {
	srv := fileServer(t, map[string]string{
		"good.json":      `{"studyId":"good"}`,
		"malformed.json": `{"studyId": `,
	})

	records, err := Load(t.Context(), httpSource(t, srv), Options{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "good", records[0].ID)
}

func TestLoad_MissingFileDropsRecordOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "here.json", `{"studyId":"here"}`)
	_, err := WriteManifest(dir)
	require.NoError(t, err)

	// Manifest promises a file that no longer exists.
	var m Manifest
	m.Files = []string{"here.json", "gone.json"}
	m.TotalFiles = 2
	raw, err := json.Marshal(m)
	require.NoError(t, err)
	writeFile(t, dir, ManifestName, string(raw))

	records, err := Load(t.Context(), NewFSSource(dir), Options{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "here", records[0].ID)
}

func TestLoad_EmptyManifestIsFatal(t *testing.T) {
	srv := fileServer(t, nil)

	_, err := Load(t.Context(), httpSource(t, srv), Options{})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestLoad_MissingManifestIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)

	_, err := Load(t.Context(), httpSource(t, srv), Options{})
	assert.Error(t, err)
}

func TestLoad_AllRecordsFailingIsFatal(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/"+ManifestName, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Manifest{Files: []string{"x.json", "y.json"}})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	_, err := Load(t.Context(), httpSource(t, srv), Options{})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestLoad_DuplicateIDKeepsFirst(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", `{"studyId":"dup","characteristics":{"title":"first"}}`)
	writeFile(t, dir, "b.json", `{"studyId":"dup","characteristics":{"title":"second"}}`)
	_, err := WriteManifest(dir)
	require.NoError(t, err)

	records, err := Load(t.Context(), NewFSSource(dir), Options{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "first", records[0].Characteristics.Title)
}

func TestLoad_FilenameFallbackID(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "st-99.json", `{"characteristics":{"title":"untitled"}}`)
	_, err := WriteManifest(dir)
	require.NoError(t, err)

	records, err := Load(t.Context(), NewFSSource(dir), Options{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "st-99", records[0].ID)
}
