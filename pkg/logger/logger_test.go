package logger_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/daemlu/convivencia-api/pkg/logger"
)

func TestNew_SellaServicioEnCadaLinea(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{
		Env:     "production",
		Level:   "info",
		Service: "convivencia-escolar",
		Out:     &buf,
	})

	log.Info().Str("env", "production").Msg("iniciando aplicación")

	assert.Contains(t, buf.String(), `"service":"convivencia-escolar"`)
	assert.Contains(t, buf.String(), `"message":"iniciando aplicación"`)
}

func TestNew_FiltraPorNivel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{
		Env:   "production",
		Level: "warn",
		Out:   &buf,
	})

	log.Debug().Msg("no debería salir")
	log.Info().Msg("tampoco")
	log.Warn().Msg("esto sí")

	salida := buf.String()
	assert.NotContains(t, salida, "no debería salir")
	assert.NotContains(t, salida, "tampoco")
	assert.Contains(t, salida, "esto sí")
}

func TestNew_NivelDesconocidoCaeEnInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{
		Env:   "production",
		Level: "verboso",
		Out:   &buf,
	})

	log.Debug().Msg("filtrado")
	log.Info().Msg("visible")

	assert.NotContains(t, buf.String(), "filtrado")
	assert.Contains(t, buf.String(), "visible")
}
