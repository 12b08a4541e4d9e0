// Package report serializa el reporte de reconciliación (JSON, XML) y lo escribe a disco.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jhoicas/Inventario-reconciler/internal/domain/entity"
)

// JSONRenderer produce JSON determinista: claves ordenadas, sangría de 2 espacios,
// sin escapar HTML y con salto de línea final.
type JSONRenderer struct{}

// NewJSONRenderer construye el renderizador.
func NewJSONRenderer() *JSONRenderer { return &JSONRenderer{} }

func (JSONRenderer) Format() string      { return "json" }
func (JSONRenderer) ContentType() string { return "application/json; charset=utf-8" }

// Render serializa el reporte. encoding/json respeta el orden de declaración de los
// structs; se pasa por un árbol genérico para que todas las claves queden ordenadas.
func (JSONRenderer) Render(_ context.Context, r *entity.ReconciliationReport) ([]byte, error) {
	return MarshalSorted(r)
}

// MarshalSorted serializa v con todas las claves de objeto en orden lexicográfico.
func MarshalSorted(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("json: serializar: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("json: reordenar: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tree); err != nil {
		return nil, fmt.Errorf("json: serializar: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile escribe data en path creando los directorios padre.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("crear directorio %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", path, err)
	}
	return nil
}
