package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// StringSet es un campo multi-selección. Acepta en el JSON de entrada un
// arreglo de strings o, por tolerancia con datos heredados, un string separado
// por comas. Siempre se normaliza a conjunto: sin vacíos y sin duplicados,
// conservando el orden de primera aparición.
type StringSet []string

// UnmarshalJSON implementa json.Unmarshaler.
func (s *StringSet) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*s = normalizeSet(arr)
		return nil
	}
	var legacy string
	if err := json.Unmarshal(data, &legacy); err == nil {
		*s = normalizeSet(strings.Split(legacy, ","))
		return nil
	}
	if string(data) == "null" {
		*s = nil
		return nil
	}
	return fmt.Errorf("campo multi-selección: se espera arreglo o string")
}

// MarshalJSON serializa siempre como arreglo, nunca null.
func (s StringSet) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}

func normalizeSet(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Formatos de fecha aceptados en la entrada. El primero es el canónico.
var fechaLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04", // datetime-local del formulario
	"2006-01-02 15:04:05.000Z",
	"2006-01-02",
}

// FechaHora es una marca de tiempo que tolera los formatos en que el
// formulario y los datos históricos entregan fechas, y se canoniza a RFC3339
// UTC antes de persistir.
type FechaHora struct {
	time.Time
}

// UnmarshalJSON implementa json.Unmarshaler.
func (f *FechaHora) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		f.Time = time.Time{}
		return nil
	}
	for _, layout := range fechaLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			f.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("fecha inválida: %q", raw)
}

// MarshalJSON serializa en RFC3339 UTC, o string vacío si no hay valor.
func (f FechaHora) MarshalJSON() ([]byte, error) {
	if f.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(f.UTC().Format(time.RFC3339))
}
