package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath"`    // Path to the JSON file (json type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

const builtinGroup = "Built-in Scenes"

type builtinScene struct {
	info  SceneInfo
	build func() *Scene
}

var builtins = []builtinScene{
	{
		info: SceneInfo{
			ID:          "point-light-plane",
			Name:        "Point Light Plane",
			Description: "White plane under one attenuated point light",
		},
		build: NewPointLightPlaneScene,
	},
	{
		info: SceneInfo{
			ID:          "mirror",
			Name:        "Mirror",
			Description: "Spheres in front of a mirror wall, with shadows",
		},
		build: NewMirrorScene,
	},
	{
		info: SceneInfo{
			ID:          "triangle",
			Name:        "Triangle",
			Description: "One triangle with interpolated vertex normals",
		},
		build: NewTriangleScene,
	},
}

// NewBuiltin creates the built-in scene with the given id
func NewBuiltin(id string) (*Scene, error) {
	for _, b := range builtins {
		if b.info.ID == id {
			return b.build(), nil
		}
	}
	return nil, fmt.Errorf("unknown built-in scene %q", id)
}

// Load resolves a scene argument: a path to a .json file or a built-in id
func Load(nameOrPath string) (*Scene, error) {
	if strings.EqualFold(filepath.Ext(nameOrPath), ".json") {
		cfg, err := LoadConfig(nameOrPath)
		if err != nil {
			return nil, err
		}
		return cfg.Build()
	}
	return NewBuiltin(nameOrPath)
}

// ResolveID maps a "json:<name>" scene id to <dir>/<name>.json. Other ids and
// paths are returned unchanged.
func ResolveID(id, dir string) string {
	if name, ok := strings.CutPrefix(id, "json:"); ok {
		return filepath.Join(dir, name+".json")
	}
	return id
}

// ListJSONScenes scans dir for scene files and returns their metadata
func ListJSONScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		// No scenes directory, nothing to list
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	var scenes []SceneInfo
	for _, filePath := range files {
		info, err := ParseSceneMetadata(filePath)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes, nil
}

// ParseSceneMetadata reads the name, description and group of a JSON scene file
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	nameWithoutExt := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))

	info := SceneInfo{
		ID:       fmt.Sprintf("json:%s", nameWithoutExt),
		Name:     titleCase(nameWithoutExt),
		Group:    "Scene Files",
		Type:     "json",
		FilePath: filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return info, fmt.Errorf("failed to read %s: %w", filePath, err)
	}
	var meta struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Group       string `json:"group"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return info, fmt.Errorf("failed to parse %s: %w", filePath, err)
	}

	if meta.Name != "" {
		info.Name = meta.Name
	}
	if meta.Group != "" {
		info.Group = meta.Group
	}
	info.Description = meta.Description
	return info, nil
}

// ListAllScenes returns both built-in and JSON scenes, grouped by category
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	allScenes := make([]SceneInfo, 0, len(builtins))
	for _, b := range builtins {
		info := b.info
		info.Group = builtinGroup
		info.Type = "builtin"
		allScenes = append(allScenes, info)
	}

	jsonScenes, err := ListJSONScenes(dir)
	if err != nil {
		return response, fmt.Errorf("failed to list JSON scenes: %w", err)
	}
	allScenes = append(allScenes, jsonScenes...)

	// Group scenes by their Group field
	groupMap := make(map[string][]SceneInfo)
	for _, scene := range allScenes {
		groupMap[scene.Group] = append(groupMap[scene.Group], scene)
	}

	// Create ordered groups (Built-in first, then alphabetical)
	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtinGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	response.Groups = append(response.Groups, SceneGroup{
		Name:   builtinGroup,
		Scenes: groupMap[builtinGroup],
	})
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response, nil
}

// titleCase converts a filename-style string to title case
// e.g., "mirror-room" -> "Mirror Room"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
