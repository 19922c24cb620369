// Package configs provides the embedded configuration template for cardindex.
//
// The template is embedded at build time with //go:embed so it ships in
// every distribution, source builds included. 'cardindex init' writes it
// as .cardindex.yaml in the working directory.
package configs

import _ "embed"

// ProjectConfigTemplate is the annotated template for .cardindex.yaml.
//
//go:embed project-config.example.yaml
var ProjectConfigTemplate string
