// Package metadata resolves installed project metadata from declared
// manifests. A manifest that carries both a project name and a version
// (package.json, pyproject.toml, Cargo.toml, and friends) acts as an
// installed distribution: looking up a package by its declared name
// yields the authoritative version without touching the source tree.
package metadata
