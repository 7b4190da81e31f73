// Package storage implementa el almacenamiento de archivos subidos
// (recibos de gastos, adjuntos de órdenes) en disco local.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStore guarda archivos en un directorio del disco local. El directorio
// se crea al construir el store.
type LocalStore struct {
	dir string
}

// NewLocal crea el store y asegura que el directorio exista.
func NewLocal(dir string) (*LocalStore, error) {
	if dir == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de uploads: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Save escribe el contenido bajo name dentro del directorio y devuelve la
// ruta final. El nombre viene ya saneado por el caso de uso (uuid + extensión),
// nunca del cliente.
func (s *LocalStore) Save(name string, r io.Reader) (string, error) {
	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("crear archivo: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("escribir archivo: %w", err)
	}
	return path, nil
}
