package maploader

// DefaultLevelData returns the built-in demo maze. It uses every wall type
// and nests a small gallery behind the portal.
func DefaultLevelData() *LevelData {
	return &LevelData{
		Name: "demo",
		Rows: []string{
			"#&&&#%####$##=##",
			"#       -      #",
			"# ##### # #### #",
			"#     # #    @ #",
			"### # # #### # #",
			"#   #   ?    ! #",
			"# ### ##### ## #",
			"#   *   /  .   #",
			"################",
		},
		PlayerSpawn: &SpawnPoint{X: 1.5, Y: 1.5, Yaw: 0.1},
		Lights: []LightData{
			{X: 2.5, Y: 1.5, Intensity: 1},
			{X: 10.5, Y: 1.5, Intensity: 0.8},
			{X: 6.5, Y: 5.5, Intensity: 0.6},
			{X: 12.5, Y: 7.5, Intensity: 0.5},
		},
		Entities: []EntityData{
			{X: 4.5, Y: 1.5, Behavior: BehaviorPatrol, Patrol: &PatrolData{Y: 1.5, MinX: 2.5, MaxX: 5.5, PeriodMS: 10000}},
			{X: 9.5, Y: 7.5, Behavior: BehaviorFollow},
		},
		Models: []ModelData{
			{X: 3.5, Y: 7.5, Path: "models/teapot.obj", Scale: 0.25},
		},
		Portal: &LevelData{
			Name: "gallery",
			Rows: []string{
				"#####",
				"#   #",
				"# & #",
				"#   #",
				"#####",
			},
			PlayerSpawn: &SpawnPoint{X: 1.5, Y: 3.5, Yaw: -45},
			Lights: []LightData{
				{X: 2.5, Y: 1.5, Intensity: 0.7},
			},
		},
	}
}

// DefaultLevel returns the built-in demo maze, validated.
func DefaultLevel() *Level {
	level, err := NewLevel(DefaultLevelData())
	if err != nil {
		panic(err)
	}
	return level
}
