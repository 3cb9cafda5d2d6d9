package version

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/HoriaMercan/PM-project/internal/domain"
)

// Заполняются через -ldflags "-X .../internal/version.Version=v0.3.0".
// Пустые значения берутся из метаданных VCS, которые go build кладет в бинарник.
var (
	Version   string
	Commit    string
	BuildDate string // YYYY-MM-DD (UTC)
)

// BuildInfo - метаданные сборки сервера. Board и Players нужны клиентам,
// собранным под другое поле: они сверяются по ним.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"buildDate"`
	Dirty     bool   `json:"dirty"`
	GoVersion string `json:"goVersion"`
	Module    string `json:"module"`
	Board     string `json:"board"`
	Players   int    `json:"players"`
}

// Info собирает метаданные: ldflags важнее данных VCS.
func Info() BuildInfo {
	bi, _ := debug.ReadBuildInfo()
	return resolve(bi)
}

func resolve(bi *debug.BuildInfo) BuildInfo {
	info := BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		Board:     fmt.Sprintf("%dx%d", domain.Width, domain.Height),
		Players:   domain.PlayerCount,
	}
	if bi == nil {
		info.Version = coalesce(info.Version, "dev")
		return info
	}

	info.GoVersion = bi.GoVersion
	info.Module = bi.Main.Path
	if info.Version == "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	info.Version = coalesce(info.Version, "dev")

	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = shortRevision(s.Value)
			}
		case "vcs.time":
			// 2025-05-11T09:30:00Z -> 2025-05-11
			if info.BuildDate == "" {
				info.BuildDate, _, _ = strings.Cut(s.Value, "T")
			}
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
	return info
}

func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}

// String - строка для лога при старте.
func String() string {
	info := Info()
	commit := coalesce(info.Commit, "unknown")
	if info.Dirty {
		commit += "+dirty"
	}
	return fmt.Sprintf("BlueBomb %s commit[%s] built[%s] board[%s] %s",
		info.Version,
		commit,
		coalesce(info.BuildDate, "unknown"),
		info.Board,
		coalesce(info.GoVersion, "go?"),
	)
}

func coalesce(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
