// Package pluginassembly replaces the binary of a registered plug-in assembly
// with a locally built one. The assembly is found by its file name without extension.
package pluginassembly
