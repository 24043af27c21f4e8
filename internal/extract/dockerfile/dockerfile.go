// Package dockerfile implements the container-build-file extractor: the
// fixed Dockerfile instruction set, base-image parsing with tag/alias
// groups, ENV/EXPOSE/VOLUME parsing (including JSON-array vs space-separated
// VOLUME forms), a whole-file Chunk with a generated description, and one
// file_directive Chunk per instruction for granular search.
package dockerfile

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/bivav/code-cognitio/internal/chunk"
)

var (
	instructionRe = regexp.MustCompile(`(?m)^\s*(FROM|RUN|CMD|LABEL|MAINTAINER|EXPOSE|ENV|ADD|COPY|ENTRYPOINT|VOLUME|USER|WORKDIR|ARG|ONBUILD|HEALTHCHECK|SHELL|STOPSIGNAL)\s+(.*?)(?:\s*#.*)?$`)
	commentRe     = regexp.MustCompile(`(?m)^\s*#\s*(.*)$`)
	fromRe        = regexp.MustCompile(`FROM\s+([^:\s]+)(?::([^\s]+))?(?:\s+AS\s+(\w+))?`)
	envRe         = regexp.MustCompile(`ENV\s+(\w+)(?:\s+|=)(\S+)`)
	exposeRe      = regexp.MustCompile(`(?m)EXPOSE\s+(.+?)(?:\s*#.*)?$`)
	volumeRe      = regexp.MustCompile(`(?m)VOLUME\s+(.+?)(?:\s*#.*)?$`)
	splitRe       = regexp.MustCompile(`[,\s]+`)
)

// Extractor implements extract.Extractor for Dockerfiles.
type Extractor struct{}

// New returns a Dockerfile extractor.
func New() *Extractor { return &Extractor{} }

// Extract implements extract.Extractor.
func (e *Extractor) Extract(ctx context.Context, path string, source []byte) ([]*chunk.Chunk, error) {
	content := string(source)

	baseImages := extractBaseImages(content)
	instructions := extractInstructions(content)
	envVars := extractEnvVars(content)
	ports := extractExposedPorts(content)
	volumes := extractVolumes(content)
	comments := extractComments(content)

	whole := chunk.New(chunk.KindGenericFile, filepath.Base(path), path, 1, "dockerfile")
	whole.RawText = content
	whole.SetBaseImages(baseImages)
	whole.SetInstructions(instructions)
	whole.SetEnvVars(envVars)
	whole.SetExposedPorts(ports)
	whole.SetVolumes(volumes)
	whole.SetDescription(generateDescription(baseImages, instructions, envVars, ports))
	if len(comments) > 0 {
		whole.SetComments(comments)
	}

	chunks := []*chunk.Chunk{whole}
	for _, instr := range instructions {
		value := instr.Value
		readable := instr.Verb + " " + value
		if len(value) > 30 {
			readable = instr.Verb + " " + value[:30] + "..."
		}

		c := chunk.New(chunk.KindFileDirective, instr.Verb, path, instr.Lineno, "dockerfile")
		c.SetReadableName(readable)
		c.RawText = instr.Verb + " " + instr.Value
		chunks = append(chunks, c)
	}

	return chunks, nil
}

func extractBaseImages(content string) []chunk.BaseImage {
	var images []chunk.BaseImage
	for _, m := range fromRe.FindAllStringSubmatch(content, -1) {
		tag := m[2]
		if tag == "" {
			tag = "latest"
		}
		images = append(images, chunk.BaseImage{Image: m[1], Tag: tag, Alias: m[3]})
	}
	return images
}

func extractInstructions(content string) []chunk.Instruction {
	var out []chunk.Instruction
	for _, m := range instructionRe.FindAllStringSubmatchIndex(content, -1) {
		name := content[m[2]:m[3]]
		value := strings.TrimSpace(content[m[4]:m[5]])
		lineno := strings.Count(content[:m[0]], "\n") + 1
		out = append(out, chunk.Instruction{Verb: name, Value: value, Lineno: lineno})
	}
	return out
}

func extractEnvVars(content string) map[string]string {
	vars := make(map[string]string)
	for _, m := range envRe.FindAllStringSubmatch(content, -1) {
		vars[m[1]] = m[2]
	}
	return vars
}

func extractExposedPorts(content string) []string {
	var ports []string
	for _, m := range exposeRe.FindAllStringSubmatch(content, -1) {
		for _, port := range splitRe.Split(strings.TrimSpace(m[1]), -1) {
			if port != "" {
				ports = append(ports, port)
			}
		}
	}
	return ports
}

func extractVolumes(content string) []string {
	var volumes []string
	for _, m := range volumeRe.FindAllStringSubmatch(content, -1) {
		raw := strings.TrimSpace(m[1])
		if strings.HasPrefix(raw, "[") {
			var list []string
			if err := json.Unmarshal([]byte(raw), &list); err == nil {
				volumes = append(volumes, list...)
				continue
			}
			for _, v := range splitRe.Split(strings.Trim(raw, "[] "), -1) {
				if v != "" && v != "," {
					volumes = append(volumes, strings.Trim(v, `"`))
				}
			}
			continue
		}
		for _, v := range splitRe.Split(raw, -1) {
			if v != "" {
				volumes = append(volumes, v)
			}
		}
	}
	return volumes
}

func extractComments(content string) []string {
	var comments []string
	for _, m := range commentRe.FindAllStringSubmatch(content, -1) {
		c := strings.TrimSpace(m[1])
		if c != "" {
			comments = append(comments, c)
		}
	}
	return comments
}

func generateDescription(baseImages []chunk.BaseImage, instructions []chunk.Instruction, envVars map[string]string, ports []string) string {
	var parts []string

	if len(baseImages) > 0 {
		s := fmt.Sprintf("Based on %s:%s", baseImages[0].Image, baseImages[0].Tag)
		if len(baseImages) > 1 {
			s += fmt.Sprintf(" and %d other base images", len(baseImages)-1)
		}
		parts = append(parts, s)
	}

	if len(instructions) > 0 {
		counts := make(map[string]int)
		var order []string
		for _, instr := range instructions {
			if _, ok := counts[instr.Verb]; !ok {
				order = append(order, instr.Verb)
			}
			counts[instr.Verb]++
		}
		var summaries []string
		for _, name := range order {
			summaries = append(summaries, strconv.Itoa(counts[name])+" "+name)
		}
		parts = append(parts, "Contains "+strings.Join(summaries, ", "))
	}

	if len(envVars) > 0 {
		parts = append(parts, fmt.Sprintf("Sets %d environment variables", len(envVars)))
	}

	if len(ports) > 0 {
		shown := ports
		suffix := ""
		if len(ports) > 3 {
			shown = ports[:3]
			suffix = fmt.Sprintf(" and %d more ports", len(ports)-3)
		}
		parts = append(parts, "Exposes "+strings.Join(shown, ", ")+suffix)
	}

	return strings.Join(parts, ". ")
}
