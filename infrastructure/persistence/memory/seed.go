package memory

import (
	"time"

	"creativerse-backend/domain/core/entities"
	"creativerse-backend/domain/core/valueobjects"
)

// seedTime anchors the sample data so restarts produce the same catalog
var seedTime = time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)

// SeedRealityData returns the static sample catalog loaded at startup
func SeedRealityData() []entities.RealityData {
	return []entities.RealityData{
		{
			ID:          "rd-1",
			Name:        "Neon City Model",
			Type:        entities.DataTypeModel,
			Description: "Low-poly cyberpunk city block with emissive signage",
			DateCreated: seedTime,
			Size:        "24.5 MB",
			Tags:        []string{"city", "cyberpunk", "environment"},
		},
		{
			ID:          "rd-2",
			Name:        "Rain Ambience",
			Type:        entities.DataTypeAudio,
			Description: "Looped rainfall with distant thunder, 48 kHz stereo",
			DateCreated: seedTime.Add(24 * time.Hour),
			Size:        "8.1 MB",
			Tags:        []string{"ambience", "weather", "loop"},
		},
		{
			ID:          "rd-3",
			Name:        "Drone Flyover",
			Type:        entities.DataTypeVideo,
			Description: "Aerial pass over a coastline at golden hour",
			DateCreated: seedTime.Add(48 * time.Hour),
			Size:        "312 MB",
			Tags:        []string{"aerial", "coast", "footage"},
		},
		{
			ID:          "rd-4",
			Name:        "Particle Shader",
			Type:        entities.DataTypeCode,
			Description: "GPU particle system with curl noise turbulence",
			DateCreated: seedTime.Add(72 * time.Hour),
			Size:        "18 KB",
			Tags:        []string{"shader", "particles", "gpu"},
		},
		{
			ID:          "rd-5",
			Name:        "Worldbuilding Notes",
			Type:        entities.DataTypeText,
			Description: "Faction histories and naming conventions",
			DateCreated: seedTime.Add(96 * time.Hour),
			Size:        "64 KB",
			Tags:        []string{"lore", "writing"},
		},
		{
			ID:          "rd-6",
			Name:        "Synth Score Sketch",
			Type:        entities.DataTypeAudio,
			Description: "Analog synth theme, 96 BPM, unmixed stems",
			DateCreated: seedTime.Add(120 * time.Hour),
			Size:        "41 MB",
			Tags:        []string{"music", "stems", "synth"},
		},
	}
}

// SeedPersonas returns the static AI persona directory
func SeedPersonas() []*entities.Persona {
	return []*entities.Persona{
		{
			ID:        "nova",
			Name:      "Nova",
			Role:      "Creative Director",
			Specialty: "composition and narrative flow",
			Greeting:  "Hey! Nova here. Show me what you're building and we'll make it sing.",
			Color:     "#f472b6",
			Responses: []string{
				"Interesting direction. Push the contrast further and see what breaks.",
				"That could anchor the whole piece. What's the emotional core?",
				"Try pairing it with something from a different medium entirely.",
			},
			KeywordReplies: map[string]string{
				"fusion": "Fusions work best when the sources pull against each other a little. Pick a pair that argues.",
				"stuck":  "When you're stuck, delete the part you're proudest of and see what the rest wants to become.",
			},
		},
		{
			ID:        "flux",
			Name:      "Flux",
			Role:      "Technical Artist",
			Specialty: "shaders, pipelines, and performance",
			Greeting:  "Flux online. Bring me your broken shaders.",
			Color:     "#38bdf8",
			Responses: []string{
				"Profile first. Intuition about bottlenecks is usually wrong.",
				"That effect is cheaper as a post-process than in the material.",
				"Bake it. Runtime generation is for things that actually change.",
			},
			KeywordReplies: map[string]string{
				"slow":   "Measure before you optimize. What does the frame capture say?",
				"shader": "Start from the particle shader in the catalog, it already handles the turbulence you want.",
			},
		},
		{
			ID:        "echo",
			Name:      "Echo",
			Role:      "Archivist",
			Specialty: "catalog curation and project history",
			Greeting:  "Echo here. Everything you've made is findable, if you ask nicely.",
			Color:     "#a3e635",
			Responses: []string{
				"There's a related item in the catalog you haven't opened in a while.",
				"Your strongest work shares a tag. Have you noticed which one?",
				"I filed that under three tags. Taxonomy is a creative act too.",
			},
		},
	}
}

// SeedUniverseNodes returns the starter graph shown on first launch.
// Ids are stable so snapshot restores and reseeds agree.
func SeedUniverseNodes() []*entities.UniverseNode {
	specs := []entities.UniverseNodeSnapshot{
		{
			ID:       "node-origin",
			Type:     string(entities.NodeTypeMilestone),
			Name:     "Workspace Origin",
			Position: valueobjects.NewPosition(0, 0, 0),
			Scale:    1.5,
			Color:    "#facc15",
		},
		{
			ID:       "node-first-project",
			Type:     string(entities.NodeTypeProject),
			Name:     "First Light",
			Position: valueobjects.NewPosition(3, 1, -2),
			Scale:    1.0,
			Color:    "#34d399",
			Metadata: entities.NodeMetadata{Description: "Starter project node"},
		},
		{
			ID:       "node-guide",
			Type:     string(entities.NodeTypeAI),
			Name:     "Nova",
			Position: valueobjects.NewPosition(-3, 2, 1),
			Scale:    0.9,
			Color:    "#f472b6",
		},
	}

	nodes := make([]*entities.UniverseNode, 0, len(specs))
	for _, spec := range specs {
		spec.DateCreated = seedTime
		spec.LastModified = seedTime
		node, err := entities.RestoreUniverseNode(spec)
		if err != nil {
			continue
		}
		nodes = append(nodes, node)
	}
	return nodes
}
