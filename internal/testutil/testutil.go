package testutil

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bitfantasy/nimo-orders/internal/repository"
	"github.com/bitfantasy/nimo-orders/internal/service"
	"github.com/bitfantasy/nimo-orders/internal/store"
	"github.com/gin-gonic/gin"
)

// DefaultUnits 测试用的单位枚举，与多清单部署的默认配置一致
var DefaultUnits = []string{"套", "个"}

// TestEnv holds test environment resources
type TestEnv struct {
	Store    *store.Store
	Repos    *repository.Repositories
	Services *service.Services
	Router   *gin.Engine
	T        *testing.T
}

// SetupStore creates a table store backed by a per-test temp dir
func SetupStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	return st
}

// SetupEnv wires store, repositories and services for a test
func SetupEnv(t *testing.T) *TestEnv {
	t.Helper()
	st := SetupStore(t)
	repos := repository.NewRepositories(st, DefaultUnits)
	return &TestEnv{
		Store:    st,
		Repos:    repos,
		Services: service.NewServices(repos),
		Router:   SetupRouter(),
		T:        t,
	}
}

// SetupRouter creates a gin test router
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	return r
}

// DoRequest executes a JSON request against the test router
func DoRequest(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// DoUpload executes a multipart file upload against the test router
func DoUpload(r *gin.Engine, path, filename string, content []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", filename)
	fw.Write(content)
	mw.Close()

	req, _ := http.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse parses the JSON response body into a map
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}
