package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"

	"github.com/meshforge/meshdata/config"
	"github.com/meshforge/meshdata/gltfconv"
	"github.com/meshforge/meshdata/utils"
	"github.com/meshforge/meshdata/web"
)

func loadModel(l *web.Library, path string) error {
	doc, err := gltf.Open(path)
	if err != nil {
		return err
	}
	meshes, err := gltfconv.Import(doc)
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for i, m := range meshes {
		name := base
		if origin, ok := m.ImporterState().(*gltfconv.PrimitiveOrigin); ok && origin.Mesh != "" {
			name = base + "." + origin.Mesh
		}
		if l.Get(name) != nil {
			name = fmt.Sprintf("%s.%d", name, i)
		}
		l.Add(name, m)
	}
	return nil
}

func main() {
	var addr, cfgpath, dump string
	flag.StringVar(&addr, "i", ":8000", "Address of server")
	flag.StringVar(&cfgpath, "cfg", "", "Path to yaml config")
	flag.StringVar(&dump, "dump", "", "Dump mesh with this name and exit")
	flag.Parse()

	cfg := config.Default()
	if cfgpath != "" {
		var err error
		if cfg, err = config.Load(cfgpath); err != nil {
			log.Fatal(err)
		}
	}
	if addr != ":8000" || cfg.Listen == "" {
		cfg.Listen = addr
	}
	if dump != "" {
		cfg.Dump = dump
	}

	models := append(cfg.Models, flag.Args()...)
	if len(models) == 0 {
		flag.PrintDefaults()
		return
	}

	l := web.NewLibrary()
	for _, path := range models {
		if err := loadModel(l, path); err != nil {
			log.Fatalf("Cannot load %q: %v", path, err)
		}
	}

	if cfg.Dump != "" {
		m := l.Get(cfg.Dump)
		if m == nil {
			log.Fatalf("Unknown mesh %q (have %v)", cfg.Dump, l.List())
		}
		utils.Dump(m)
		return
	}

	if err := web.StartServer(cfg.Listen, l); err != nil {
		log.Fatal(err)
	}
}
