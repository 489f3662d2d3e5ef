package cmd

import (
	"fmt"
	"strings"

	"github.com/cedarparse/cedar/pkg"
)

// Version prints the cedar version.
type Version struct{}

func (Version) Run() error {
	fmt.Println(strings.TrimSpace(pkg.Version))

	return nil
}
