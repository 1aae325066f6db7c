// Package jdk registers the embedded JDK index with the process-wide
// wildcard resolver registry. Import it for its side effect:
//
//	import _ "github.com/dhamidi/javasrc/java/resolver/jdk"
package jdk

import (
	"github.com/dhamidi/javasrc/java/resolver/index"
	"github.com/dhamidi/javasrc/java/source"
)

func init() {
	source.RegisterWildcardResolver(index.JDK())
}
