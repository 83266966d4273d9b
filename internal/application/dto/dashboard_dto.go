package dto

// DashboardResponse respuesta de GET /api/dashboard/summary: KPIs, series y
// rankings derivados de los DEC y las activaciones de protocolo visibles para
// el usuario.
//
// Los campos *Trend son nil cuando el mes anterior no tiene registros: sin
// base de comparación no se informa porcentaje (no se muestra como 0%).
type DashboardResponse struct {
	// DEC
	TotalDEC         int  `json:"total_dec"`
	DECEsteMes       int  `json:"dec_este_mes"`
	DECTrend         *int `json:"dec_trend,omitempty"` // % contra el mes anterior
	MedidasEfectivas int  `json:"medidas_efectivas"`
	// EfectividadPct = medidas efectivas / total DEC, en porcentaje entero.
	// A diferencia de los trends, un universo vacío reporta 0, no nil.
	EfectividadPct int `json:"efectividad_pct"`

	// Protocolos
	TotalProtocolos     int  `json:"total_protocolos"`
	ProtocolosEsteMes   int  `json:"protocolos_este_mes"`
	ProtocolosTrend     *int `json:"protocolos_trend,omitempty"`

	// Solo relevante para admin
	EstablecimientosActivos int      `json:"establecimientos_activos"`
	Establecimientos        []string `json:"establecimientos"`

	// Series y rankings
	DECPorMes              []SerieMensual `json:"dec_por_mes"`
	ProtocolosPorTipo      []RankingItem  `json:"protocolos_por_tipo"`
	ConductasFrecuentes    []RankingItem  `json:"conductas_frecuentes"`
	ConsecuentesFrecuentes []RankingItem  `json:"consecuentes_frecuentes"`

	UltimosDEC []UltimoDEC `json:"ultimos_dec"`
}

// SerieMensual un punto de la serie de seis meses. En vista global de admin
// trae además una línea por establecimiento (máximo 5, los de mayor actividad).
type SerieMensual struct {
	Mes                string         `json:"mes"` // ej. "Ago 26"
	Total              int            `json:"total"`
	PorEstablecimiento map[string]int `json:"por_establecimiento,omitempty"`
}

// RankingItem un grupo con su total, ordenado de mayor a menor.
type RankingItem struct {
	Nombre string `json:"nombre"`
	Total  int    `json:"total"`
}

// UltimoDEC proyección reducida de un DEC reciente para la tabla resumen.
type UltimoDEC struct {
	ID               string    `json:"id"`
	Dia              FechaHora `json:"dia"`
	NombreEstudiante string    `json:"nombre_estudiante"`
	CursoEstudiante  string    `json:"curso_estudiante"`
	Establecimiento  string    `json:"establecimiento,omitempty"`
	FuncionaMedida   bool      `json:"funciona_medida"`
}
