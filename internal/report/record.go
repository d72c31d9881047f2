package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xtding233/cogtrain-backend/internal/game"
	"github.com/xtding233/cogtrain-backend/internal/session"
)

// DateLayout is the layout of the fecha field.
const DateLayout = "2006-01-02 15:04:05"

// Prefixes are the store collections of each game.
var Prefixes = map[game.Kind]string{
	game.Orientation: "orientacion",
	game.Memory:      "memoria",
	game.Arithmetic:  "calculo",
	game.Language:    "lenguaje",
	game.Puzzle:      "rompecabezas",
	game.Spatial:     "espacial",
}

type OrientationRecord struct {
	Errors          string `json:"errores"`
	AverageResponse int    `json:"tiempoPromedioRespuesta"`
	TimeUsed        int    `json:"tiempoUsado"`
	Date            string `json:"fecha"`
}

type MemoryRecord struct {
	Errors   int    `json:"errores"`
	TimeUsed int    `json:"tiempoUsado"`
	Date     string `json:"fecha"`
}

type ArithmeticRecord struct {
	Errors          int    `json:"errores"`
	AverageResponse int    `json:"tiempoPromedioRespuesta"`
	TimeUsed        int    `json:"tiempoUsado"`
	Date            string `json:"fecha"`
}

type LanguageRecord struct {
	RequestedWords string `json:"palabrasPedidas"`
	GivenSentences string `json:"oracionesDadas"`
	TimeUsed       int    `json:"tiempoUsado"`
	Date           string `json:"fecha"`
}

type PuzzleRecord struct {
	ErrorPercent int    `json:"porcentajeError"`
	TimeUsed     int    `json:"tiempoUsado"`
	Date         string `json:"fecha"`
}

type SpatialRecord struct {
	AverageResponse int    `json:"tiempoPromedioRespuesta"`
	TimeUsed        int    `json:"tiempoUsado"`
	Date            string `json:"fecha"`
}

// Build turns a completed session into the record of its game.
// Durations are truncated to whole seconds; the date is rendered in loc.
func Build(res session.Result, loc *time.Location) (string, any, error) {
	prefix, ok := Prefixes[res.Game]
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", game.ErrUnknownGame, string(res.Game))
	}
	if loc == nil {
		loc = time.Local
	}
	m := res.Metrics
	date := res.FinishedAt.In(loc).Format(DateLayout)

	switch res.Game {
	case game.Orientation:
		return prefix, OrientationRecord{
			Errors:          strconv.Itoa(m.Incorrect),
			AverageResponse: secs(m.AverageResponse()),
			TimeUsed:        secs(res.Elapsed()),
			Date:            date,
		}, nil
	case game.Memory:
		return prefix, MemoryRecord{
			Errors:   m.Incorrect,
			TimeUsed: secs(res.Elapsed()),
			Date:     date,
		}, nil
	case game.Arithmetic:
		return prefix, ArithmeticRecord{
			Errors:          m.Incorrect,
			AverageResponse: secs(m.AverageResponse()),
			TimeUsed:        secs(m.Total),
			Date:            date,
		}, nil
	case game.Language:
		return prefix, LanguageRecord{
			RequestedWords: strings.Join(m.Requested, "|"),
			GivenSentences: strings.Join(m.Given, "|"),
			TimeUsed:       secs(res.Elapsed()),
			Date:           date,
		}, nil
	case game.Puzzle:
		return prefix, PuzzleRecord{
			ErrorPercent: int(m.ErrorPercent()),
			TimeUsed:     secs(m.Total),
			Date:         date,
		}, nil
	default:
		return prefix, SpatialRecord{
			AverageResponse: secs(m.AverageResponse()),
			TimeUsed:        secs(m.Total),
			Date:            date,
		}, nil
	}
}

// Path is where a record is stored.
func Path(prefix, playerID, recordID string) string {
	return prefix + "/" + playerID + "/" + recordID
}

func secs(d time.Duration) int { return int(d / time.Second) }
