// Package templates embeds the declaration templates shipped with swagts.
package templates

import "embed"

//go:embed ts/*.tmpl
var FS embed.FS
