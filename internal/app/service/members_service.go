package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// RoleMember es lo que el adapter de Discord sabe de cada miembro del rol.
type RoleMember struct {
	Username    string
	DisplayName string // nick del server o global name; vacío si no tiene
}

type MembersService struct {
	signups SignupsAPI
}

func NewMembersService(api SignupsAPI) *MembersService {
	return &MembersService{signups: api}
}

// cleanName: así compara el bot los nombres de Discord contra el feed
// (minúsculas, sin espacios).
func cleanName(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", ""))
}

// Report arma el listado de miembros del rol, ordenado por username. Si
// signupURL no es vacío, compara contra el feed de inscripciones y reporta
// quiénes faltan.
func (s *MembersService) Report(ctx context.Context, roleName string, members []RoleMember, signupURL string) (string, error) {
	sort.Slice(members, func(i, j int) bool {
		return strings.ToLower(members[i].Username) < strings.ToLower(members[j].Username)
	})

	if signupURL == "" {
		var b strings.Builder
		fmt.Fprintf(&b, "**Miembros con el rol %s (%d):**\n\n", roleName, len(members))
		for _, m := range members {
			if m.DisplayName != "" {
				fmt.Fprintf(&b, "%s (%s)\n", m.DisplayName, m.Username)
			}
		}
		return b.String(), nil
	}

	names, err := s.signups.Fetch(ctx, signupURL)
	if err != nil {
		return "", fmt.Errorf("feed de inscripciones: %w", err)
	}
	signed := make(map[string]struct{}, len(names))
	for _, n := range names {
		signed[cleanName(n)] = struct{}{}
	}

	var notSigned []RoleMember
	total := 0
	for _, m := range members {
		if m.DisplayName == "" {
			continue
		}
		total++
		if _, ok := signed[cleanName(m.DisplayName)]; !ok {
			notSigned = append(notSigned, m)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Comparación para el rol '%s':**\n\n", roleName)
	if len(notSigned) == 0 {
		b.WriteString("¡Todos los jugadores están inscritos! 🎉\n")
	} else {
		b.WriteString("**Sin inscribirse:**\n")
		for _, m := range notSigned {
			fmt.Fprintf(&b, "%s (%s)\n", m.DisplayName, m.Username)
		}
	}
	fmt.Fprintf(&b, "\n**Estadísticas:**\nInscritos: %d\nSin inscribirse: %d\nMiembros en Discord: %d\n",
		len(names), len(notSigned), total)
	return b.String(), nil
}
