package actions

import (
	"strings"

	"github.com/kolah/swagts/internal/model"
)

// tupleSuffixes is the order of the error-payload convention X.code, X.type,
// X.message, X.description.
var tupleSuffixes = [...]string{".code", ".type", ".message", ".description"}

// ParameterGroup is either a single parameter or a collapsed error tuple.
// For a collapsed group Params holds all four members, code first.
type ParameterGroup struct {
	Name      string
	Collapsed bool
	Params    []model.Parameter
}

// Head is the parameter that determines the group's type and optionality.
func (g ParameterGroup) Head() model.Parameter {
	return g.Params[0]
}

// GroupParameters partitions params, in order, into groups. Four contiguous
// parameters named X.code, X.type, X.message, X.description collapse into one
// group named X; any other run stays as single-parameter groups.
func GroupParameters(params []model.Parameter) []ParameterGroup {
	groups := make([]ParameterGroup, 0, len(params))
	for i := 0; i < len(params); {
		if prefix, ok := errorTuple(params[i:]); ok {
			groups = append(groups, ParameterGroup{
				Name:      prefix,
				Collapsed: true,
				Params:    params[i : i+len(tupleSuffixes)],
			})
			i += len(tupleSuffixes)
			continue
		}
		groups = append(groups, ParameterGroup{
			Name:   params[i].Name,
			Params: params[i : i+1],
		})
		i++
	}
	return groups
}

func errorTuple(params []model.Parameter) (string, bool) {
	if len(params) < len(tupleSuffixes) {
		return "", false
	}
	prefix, ok := strings.CutSuffix(params[0].Name, tupleSuffixes[0])
	if !ok {
		return "", false
	}
	for i, suffix := range tupleSuffixes[1:] {
		if !strings.HasSuffix(params[i+1].Name, suffix) {
			return "", false
		}
	}
	return prefix, true
}
