package requests

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/treelab/memfs"
	"github.com/treelab/memfs/config"
)

// LoadManifestFile reads a seed manifest from a YAML (.yaml, .yml) or JSON
// (.json) file.
func LoadManifestFile(path string) ([]NodeRequestDTO, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var dtos []NodeRequestDTO
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &dtos); err != nil {
			return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &dtos); err != nil {
			return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown manifest file extension: %s", path)
	}

	return dtos, nil
}

// Convert turns manifest DTOs into concrete create requests with defaults
// applied. Directory requests come back separately so callers can apply them
// before the files that depend on them.
func Convert(dtos []NodeRequestDTO, cfg *config.Config) ([]*memfs.DirCreateRequest, []*memfs.FileCreateRequest, error) {
	var dirs []*memfs.DirCreateRequest
	var files []*memfs.FileCreateRequest

	for i, dto := range dtos {
		switch dto.Type {
		case memfs.DirNodeType:
			dirs = append(dirs, &memfs.DirCreateRequest{
				NodeRequest: convertNodeDTO(dto, cfg.DirPerms),
			})
		case memfs.FileNodeType:
			req := &memfs.FileCreateRequest{
				NodeRequest: convertNodeDTO(dto, cfg.FilePerms),
			}
			if dto.Content != nil {
				req.Content = []byte(*dto.Content)
			}
			files = append(files, req)
		default:
			return nil, nil, fmt.Errorf("manifest entry %d (%s): unknown node type %q", i, dto.Path, dto.Type)
		}
	}

	return dirs, files, nil
}

// Conversion logic with defaults in the unmarshaling layer. Zero timestamps
// mean "use construction time" downstream.
func convertNodeDTO(dto NodeRequestDTO, defaultPerms memfs.Permissions) memfs.NodeRequest {
	req := memfs.NodeRequest{
		Path:  dto.Path,
		Type:  dto.Type,
		UUID:  valueOrDefault(dto.UUID, ""),
		Perms: valueOrDefault(dto.Perms, defaultPerms),
	}
	if dto.Ctime != nil {
		req.Ctime = *dto.Ctime
	}
	if dto.Mtime != nil {
		req.Mtime = *dto.Mtime
	}
	return req
}

func valueOrDefault[T any](ptr *T, defaultVal T) T {
	if ptr != nil {
		return *ptr
	}
	return defaultVal
}
