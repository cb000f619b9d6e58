package build

import "strings"

var (
	Version = "dev"
	AppName = "Pacer"
	Slug    = ""
)

func init() {
	if Slug == "" {
		Slug = strings.ToLower(AppName)
	}
}
