// Package analytics contiene el motor de agregación del Panel de Control:
// KPIs, series mensuales y rankings derivados de los DEC y las activaciones
// de protocolo.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/daemlu/convivencia-api/internal/application/dto"
	"github.com/daemlu/convivencia-api/internal/domain/entity"
)

// Etiqueta sin nombre para relaciones que no resolvieron.
const sinNombre = "Sin nombre"

// Límites de presentación de los widgets.
const (
	topProtocolos       = 8
	topConductas        = 7
	topConsecuentes     = 8
	ultimosDECMax       = 10
	mesesSerie          = 6
	maxLineasPorEstable = 5 // líneas por establecimiento en la vista global
)

var mesesES = [...]string{
	"Ene", "Feb", "Mar", "Abr", "May", "Jun",
	"Jul", "Ago", "Sep", "Oct", "Nov", "Dic",
}

// ComputeDashboard deriva todos los agregados del panel en una sola pasada
// síncrona sobre las dos colecciones ya traídas (y ya restringidas por rol).
//
// filtro restringe adicionalmente a un establecimiento (por nombre resuelto o
// por ID crudo); vacío = vista global. vistaGlobal indica que un admin mira
// todos los establecimientos, lo que abre la serie mensual en una línea por
// establecimiento. now inyecta el reloj para los dos meses de referencia.
//
// Colecciones vacías producen agregados en cero; nunca hay pánico.
func ComputeDashboard(
	dec []*entity.DEC,
	acts []*entity.ActivacionProtocolo,
	filtro string,
	vistaGlobal bool,
	now time.Time,
) *dto.DashboardResponse {
	if filtro != "" {
		dec = filtrarDEC(dec, filtro)
		acts = filtrarActivaciones(acts, filtro)
		vistaGlobal = false
	}

	mesActual := claveMes(now)
	mesAnterior := claveMes(time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, now.Location()))
	ultimos6 := ultimosNMeses(now, mesesSerie)

	// KPIs DEC
	totalDEC := len(dec)
	decEsteMes := contarDECEnMes(dec, mesActual)
	decMesAnterior := contarDECEnMes(dec, mesAnterior)
	medidasEfectivas := 0
	for _, d := range dec {
		if d.FuncionaMedida {
			medidasEfectivas++
		}
	}

	// KPIs protocolos (suma de cantidades)
	totalProtocolos := 0
	for _, a := range acts {
		totalProtocolos += a.Cantidad
	}
	protosEsteMes := sumarActivacionesEnMes(acts, mesActual)
	protosMesAnterior := sumarActivacionesEnMes(acts, mesAnterior)

	// Establecimientos con actividad en cualquiera de las dos colecciones
	establecimientos := establecimientosActivos(dec, acts)

	resp := &dto.DashboardResponse{
		TotalDEC:         totalDEC,
		DECEsteMes:       decEsteMes,
		DECTrend:         tendencia(decEsteMes, decMesAnterior),
		MedidasEfectivas: medidasEfectivas,
		EfectividadPct:   efectividad(medidasEfectivas, totalDEC),

		TotalProtocolos:   totalProtocolos,
		ProtocolosEsteMes: protosEsteMes,
		ProtocolosTrend:   tendencia(protosEsteMes, protosMesAnterior),

		EstablecimientosActivos: len(establecimientos),
		Establecimientos:        establecimientos,

		ProtocolosPorTipo:      protocolosPorTipo(acts),
		ConductasFrecuentes:    rankingMultiSeleccion(dec, func(d *entity.DEC) []string { return d.Conductas }, topConductas),
		ConsecuentesFrecuentes: rankingMultiSeleccion(dec, func(d *entity.DEC) []string { return d.Consecuentes }, topConsecuentes),
		UltimosDEC:             ultimosDEC(dec),
	}

	if vistaGlobal {
		resp.DECPorMes = serieMensualPorEstablecimiento(dec, ultimos6, topEstablecimientos(dec, maxLineasPorEstable))
	} else {
		resp.DECPorMes = serieMensualTotal(dec, ultimos6)
	}

	return resp
}

// tendencia calcula round(((actual-anterior)/anterior)*100). Con mes anterior
// en cero no hay base de comparación y se devuelve nil, no 0.
func tendencia(actual, anterior int) *int {
	if anterior <= 0 {
		return nil
	}
	pct := int(math.Round(float64(actual-anterior) / float64(anterior) * 100))
	return &pct
}

// efectividad devuelve el porcentaje entero de medidas que funcionaron.
// Universo vacío reporta 0%, intencionalmente distinto del caso tendencia.
func efectividad(efectivas, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(efectivas) / float64(total) * 100))
}

func claveMes(t time.Time) string {
	return t.Format("2006-01")
}

// ultimosNMeses devuelve las claves "YYYY-MM" de los n meses calendario que
// terminan en now, del más antiguo al más reciente. La aritmética de
// time.Date normaliza el desborde en enero hacia el diciembre anterior.
func ultimosNMeses(now time.Time, n int) []string {
	meses := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		d := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, now.Location())
		meses = append(meses, claveMes(d))
	}
	return meses
}

// etiquetaMes convierte "YYYY-MM" en "Abr 26" (abreviatura localizada + año de
// dos dígitos).
func etiquetaMes(yyyymm string) string {
	t, err := time.Parse("2006-01", yyyymm)
	if err != nil {
		return yyyymm
	}
	return mesesES[t.Month()-1] + " " + t.Format("06")
}

func filtrarDEC(dec []*entity.DEC, filtro string) []*entity.DEC {
	out := make([]*entity.DEC, 0, len(dec))
	for _, d := range dec {
		if d.EstablecimientoNombre == filtro || d.EstablecimientoID == filtro {
			out = append(out, d)
		}
	}
	return out
}

func filtrarActivaciones(acts []*entity.ActivacionProtocolo, filtro string) []*entity.ActivacionProtocolo {
	out := make([]*entity.ActivacionProtocolo, 0, len(acts))
	for _, a := range acts {
		if a.EstablecimientoNombre == filtro || a.EstablecimientoID == filtro {
			out = append(out, a)
		}
	}
	return out
}

func contarDECEnMes(dec []*entity.DEC, mes string) int {
	n := 0
	for _, d := range dec {
		if d.MesEfectivo() == mes {
			n++
		}
	}
	return n
}

// sumarActivacionesEnMes suma cantidades cuyo mes declarado (Meses) o mes de
// creación coincide con la clave.
func sumarActivacionesEnMes(acts []*entity.ActivacionProtocolo, mes string) int {
	total := 0
	for _, a := range acts {
		if a.Meses == mes || a.CreatedAt.Format("2006-01") == mes {
			total += a.Cantidad
		}
	}
	return total
}

// establecimientosActivos devuelve el conjunto ordenado de nombres de
// establecimiento presentes en ambas colecciones. Alimenta el selector de
// vista del admin y el KPI de establecimientos activos.
func establecimientosActivos(dec []*entity.DEC, acts []*entity.ActivacionProtocolo) []string {
	set := make(map[string]struct{})
	for _, d := range dec {
		if d.EstablecimientoNombre != "" {
			set[d.EstablecimientoNombre] = struct{}{}
		}
	}
	for _, a := range acts {
		if a.EstablecimientoNombre != "" {
			set[a.EstablecimientoNombre] = struct{}{}
		}
	}
	nombres := make([]string, 0, len(set))
	for n := range set {
		nombres = append(nombres, n)
	}
	sort.Strings(nombres)
	return nombres
}

// topEstablecimientos elige los n establecimientos con más registros DEC, para
// no saturar el gráfico de líneas de la vista global.
func topEstablecimientos(dec []*entity.DEC, n int) []string {
	conteo := make(map[string]int)
	orden := make([]string, 0)
	for _, d := range dec {
		nombre := d.EstablecimientoNombre
		if nombre == "" {
			continue
		}
		if _, ok := conteo[nombre]; !ok {
			orden = append(orden, nombre)
		}
		conteo[nombre]++
	}
	sort.SliceStable(orden, func(i, j int) bool {
		if conteo[orden[i]] != conteo[orden[j]] {
			return conteo[orden[i]] > conteo[orden[j]]
		}
		return orden[i] < orden[j]
	})
	if len(orden) > n {
		orden = orden[:n]
	}
	return orden
}

func serieMensualTotal(dec []*entity.DEC, meses []string) []dto.SerieMensual {
	porMes := make(map[string]int, len(meses))
	for _, d := range dec {
		porMes[d.MesEfectivo()]++
	}
	serie := make([]dto.SerieMensual, 0, len(meses))
	for _, m := range meses {
		serie = append(serie, dto.SerieMensual{Mes: etiquetaMes(m), Total: porMes[m]})
	}
	return serie
}

func serieMensualPorEstablecimiento(dec []*entity.DEC, meses []string, establecimientos []string) []dto.SerieMensual {
	incluido := make(map[string]bool, len(establecimientos))
	for _, e := range establecimientos {
		incluido[e] = true
	}
	serie := make([]dto.SerieMensual, 0, len(meses))
	for _, m := range meses {
		punto := dto.SerieMensual{
			Mes:                etiquetaMes(m),
			PorEstablecimiento: make(map[string]int, len(establecimientos)),
		}
		for _, e := range establecimientos {
			punto.PorEstablecimiento[e] = 0
		}
		for _, d := range dec {
			if d.MesEfectivo() != m || !incluido[d.EstablecimientoNombre] {
				continue
			}
			punto.PorEstablecimiento[d.EstablecimientoNombre]++
			punto.Total++
		}
		serie = append(serie, punto)
	}
	return serie
}

// protocolosPorTipo agrupa activaciones por nombre de protocolo resuelto,
// sumando cantidades. La agrupación es conmutativa: reordenar la entrada no
// cambia los totales.
func protocolosPorTipo(acts []*entity.ActivacionProtocolo) []dto.RankingItem {
	totales := make(map[string]int)
	orden := make([]string, 0)
	for _, a := range acts {
		nombre := a.ProtocoloNombre
		if nombre == "" {
			nombre = sinNombre
		}
		if _, ok := totales[nombre]; !ok {
			orden = append(orden, nombre)
		}
		totales[nombre] += a.Cantidad
	}
	return rankear(orden, totales, topProtocolos)
}

// rankingMultiSeleccion cuenta ocurrencias de cada opción de un campo
// multi-selección a través de todos los DEC.
func rankingMultiSeleccion(dec []*entity.DEC, campo func(*entity.DEC) []string, limite int) []dto.RankingItem {
	totales := make(map[string]int)
	orden := make([]string, 0)
	for _, d := range dec {
		for _, opcion := range campo(d) {
			if _, ok := totales[opcion]; !ok {
				orden = append(orden, opcion)
			}
			totales[opcion]++
		}
	}
	return rankear(orden, totales, limite)
}

// rankear ordena descendente por total (empates por orden alfabético, por
// determinismo) y trunca al límite de presentación.
func rankear(orden []string, totales map[string]int, limite int) []dto.RankingItem {
	sort.SliceStable(orden, func(i, j int) bool {
		if totales[orden[i]] != totales[orden[j]] {
			return totales[orden[i]] > totales[orden[j]]
		}
		return orden[i] < orden[j]
	})
	if len(orden) > limite {
		orden = orden[:limite]
	}
	items := make([]dto.RankingItem, 0, len(orden))
	for _, nombre := range orden {
		items = append(items, dto.RankingItem{Nombre: nombre, Total: totales[nombre]})
	}
	return items
}

// ultimosDEC proyecta los 10 DEC creados más recientemente.
func ultimosDEC(dec []*entity.DEC) []dto.UltimoDEC {
	ordenados := make([]*entity.DEC, len(dec))
	copy(ordenados, dec)
	sort.SliceStable(ordenados, func(i, j int) bool {
		return ordenados[i].CreatedAt.After(ordenados[j].CreatedAt)
	})
	if len(ordenados) > ultimosDECMax {
		ordenados = ordenados[:ultimosDECMax]
	}
	out := make([]dto.UltimoDEC, 0, len(ordenados))
	for _, d := range ordenados {
		dia := d.Dia
		if dia.IsZero() {
			dia = d.CreatedAt
		}
		out = append(out, dto.UltimoDEC{
			ID:               d.ID,
			Dia:              dto.FechaHora{Time: dia},
			NombreEstudiante: d.NombreEstudiante,
			CursoEstudiante:  d.CursoEstudiante,
			Establecimiento:  d.EstablecimientoNombre,
			FuncionaMedida:   d.FuncionaMedida,
		})
	}
	return out
}
