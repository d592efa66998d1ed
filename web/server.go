// Package web serves a JSON inspection API over a library of loaded
// meshes: raw metadata, decoded canonical arrays and buffer dumps.
package web

import (
	"log"
	"net/http"
	"os"
	"sort"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/meshforge/meshdata/mesh"
)

// Library is a named, ordered collection of meshes. Reads are safe
// concurrently; Add is expected before the server starts.
type Library struct {
	mu     sync.RWMutex
	meshes map[string]*mesh.MeshData
}

func NewLibrary() *Library {
	return &Library{meshes: make(map[string]*mesh.MeshData)}
}

func (l *Library) Add(name string, m *mesh.MeshData) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.meshes[name] = m
}

func (l *Library) Get(name string) *mesh.MeshData {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.meshes[name]
}

func (l *Library) List() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.meshes))
	for name := range l.meshes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var serverLibrary *Library

func StartServer(addr string, l *Library) error {
	serverLibrary = l

	r := mux.NewRouter()
	r.HandleFunc("/json/meshes", HandlerMeshList)
	r.HandleFunc("/json/mesh/{name}", HandlerMeshInfo)
	r.HandleFunc("/json/mesh/{name}/{view}", HandlerMeshView)
	r.HandleFunc("/dump/mesh/{name}/{buffer}", HandlerMeshDump)

	h := handlers.RecoveryHandler()(r)
	h = handlers.LoggingHandler(os.Stdout, h)

	log.Printf("[web] Starting server %v", addr)

	return http.ListenAndServe(addr, h)
}
