package codetables

import "synop_parser/internal/obs"

// Enumerated tables.
var (
	// CloudGenus0500 is the genus of cloud.
	CloudGenus0500 = &LookupTable{
		Table: "0500", Width: 1,
		Values: []string{"Ci", "Cc", "Cs", "Ac", "As", "Ns", "Sc", "St", "Cu", "Cb"},
	}

	// SpecialCloud0521 is the genus of special clouds.
	SpecialCloud0521 = &LookupTable{
		Table: "0521", Width: 1,
		Values: []string{
			"",
			"Nacreous clouds",
			"Noctilucent clouds",
			"Clouds from waterfalls",
			"Clouds from fires",
			"Clouds from volcanic eruptions",
		},
	}

	// CloudTopDescription0552 describes the top of a cloud whose base is
	// below station level.
	CloudTopDescription0552 = &LookupTable{
		Table: "0552", Width: 1,
		Values: []string{
			"Isolated cloud or fragments of cloud",
			"Continuous cloud (flat tops)",
			"Broken cloud - small breaks (flat tops)",
			"Broken cloud - large breaks (flat tops)",
			"Continuous cloud (undulating tops)",
			"Broken cloud - small breaks (undulating tops)",
			"Broken cloud - large breaks (undulating tops)",
			"Continuous or almost continuous waves with towering clouds above the top layer",
			"Groups of waves with towering clouds above the top of the layer",
			"Two or more layers at different levels"},
	}

	// Darkness0163 is day darkness, worst in direction D.
	Darkness0163 = &LookupTable{
		Table: "0163", Width: 1,
		Values: []string{"Bad", "Very bad", "black"},
	}

	// AnvilElevation0938 is the elevation above the horizon of the base
	// of a cumulonimbus anvil or summit of other phenomena.
	AnvilElevation0938 = &LookupTable{
		Table: "0938", Width: 1,
		Values: []string{
			"", "Very low on the horizon", "", "Less than 30 degrees above the horizon",
			"", "", "", "More than 30 degrees above the horizon"},
	}

	// Intensity1861 is the intensity of a phenomenon.
	Intensity1861 = &LookupTable{
		Table: "1861", Width: 1,
		Values: []string{"Slight", "Moderate", "Heavy or strong"},
	}

	// CondensationTrail2752 describes condensation trails.
	CondensationTrail2752 = &LookupTable{
		Table: "2752", Width: 1,
		Values: []string{"", "", "", "", "",
			"Non-persistent",
			"Persistent, covering less than 1/8 of the sky",
			"Persistent, covering 1/8 of the sky",
			"Persistent, covering 2/8 of the sky",
			"Persistent, covering 3/8 or more of the sky"},
	}

	// ValleyCondition2754 is cloud conditions observed from a higher
	// level.
	ValleyCondition2754 = &LookupTable{
		Table: "2754", Width: 1,
		Values: []string{
			"No cloud or mist",
			"Mist, clear above",
			"Fog patches",
			"Layer of slight fog",
			"Layer of thick fog",
			"Some isolated clouds",
			"Isolated clouds and fog below",
			"Many isolated clouds",
			"Sea of clouds",
			"Bad visibility obscuring the downward view"},
	}

	// CloudEvolution2863 is the evolution of clouds.
	CloudEvolution2863 = &LookupTable{
		Table: "2863", Width: 1,
		Values: []string{
			"No change", "Cumulification", "Slow elevation", "Rapid elevation",
			"Elevation and stratification", "Slow lowering", "Rapid lowering",
			"Stratification", "Stratification and lowering", "Rapid change"},
	}

	// CloudEvolutionAbove2864 is the evolution of clouds observed from a
	// station at a higher level.
	CloudEvolutionAbove2864 = &LookupTable{
		Table: "2864", Width: 1,
		Values: []string{
			"No change",
			"Decrease and elevation",
			"Decrease",
			"Elevation",
			"Decrease and lowering",
			"Increase and elevation",
			"Lowering",
			"Increase",
			"Increase and lowering",
			"Intermittent fog at the station"},
	}

	// IceAccretionRate3551 is the rate of ice accretion on ships.
	IceAccretionRate3551 = &LookupTable{
		Table: "3551", Width: 1,
		Values: []string{
			"Ice not building up",
			"Ice building up slowly",
			"Ice building up rapidly",
			"Ice melting or breaking up slowly",
			"Ice melting or breaking up rapidly"},
	}

	// SeaState3700 is the state of the sea.
	SeaState3700 = &LookupTable{
		Table: "3700", Width: 1,
		Values: []string{
			"Calm (glassy)", "Calm (rippled)", "Smooth (wavelets)", "Slight",
			"Moderate", "Rough", "Very rough", "High", "Very high", "Phenomenal"},
	}

	// FrozenDepositType3764 is the type of frozen deposit.
	FrozenDepositType3764 = &LookupTable{
		Table: "3764", Width: 1,
		Values: []string{
			"Glaze", "Soft rime", "Hard rime", "Snow deposit", "Wet snow deposit",
			"Freezing wet snow deposit", "Compound deposits", "Ground ice"},
	}

	// SnowCoverCharacter3765 is the character of snow cover.
	SnowCoverCharacter3765 = &LookupTable{
		Table: "3765", Width: 1,
		Values: []string{
			"Light fresh snow", "Fresh snow blown into drifts", "Fresh compact snow",
			"Old snow, loose", "Old snow, firm", "Old snow, moist",
			"Loose snow, with surface crust", "Firm snow, with surface crust",
			"Moist snow, with surface crust"},
	}

	// SnowCoverRegularity3775 is the regularity of snow cover.
	SnowCoverRegularity3775 = &LookupTable{
		Table: "3775", Width: 1,
		Values: []string{
			"Even snow cover, ground frozen, no drifts",
			"Even snow cover, ground soft, no drifts",
			"Even snow cover, state of ground unknown, no drifts",
			"Snow cover moderately uneven, ground frozen, slight drifts",
			"Snow cover moderately uneven, ground soft, slight drifts",
			"Snow cover moderately uneven, state of ground unknown, slight drifts",
			"Snow cover very uneven, ground frozen, deep drifts",
			"Snow cover very uneven, ground soft, deep drifts",
			"Snow cover very uneven, state of ground unknown, deep drifts"},
	}

	// OpticalPhenomena5161 lists optical phenomena.
	OpticalPhenomena5161 = &LookupTable{
		Table: "5161", Width: 1,
		Values: []string{
			"Brocken spectre", "Rainbow", "Solar or lunar halo", "Parhelia or anthelia",
			"Sun pillar", "Corona", "Twilight glow", "Twilight glow on the mountains",
			"Mirage", "Zodiacal light"},
	}

	// PrecipCharacter167 is the character and intensity of precipitation
	// (Region I).
	PrecipCharacter167 = &LookupTable{
		Table: "167", Width: 1,
		Values: []string{
			"No precipitation",
			"Light intermittent",
			"Moderate intermittent",
			"Heavy intermittent",
			"Very heavy intermittent",
			"Light continuous",
			"Moderate continuous",
			"Heavy continuous",
			"Very heavy continuous",
			"Variable - alternatively light and heavy"},
	}
)

// Numeric lookup tables.
var (
	// IsobaricSurface0264 is the standard isobaric surface for which the
	// geopotential is reported.
	IsobaricSurface0264 = &NumericLookupTable{
		Table: "0264", Unit: "hPa", Width: 1,
		Values: []*float64{nil, obs.Float(1000), obs.Float(925), nil, nil,
			obs.Float(500), nil, obs.Float(700), obs.Float(850)},
	}

	// PrecipReferencePeriod4019 is the duration of the period of
	// reference for the amount of precipitation, ending at the time of
	// the report.
	PrecipReferencePeriod4019 = &NumericLookupTable{
		Table: "4019", Unit: "h", Width: 1,
		Values: []*float64{nil, obs.Float(6), obs.Float(12), obs.Float(18), obs.Float(24),
			obs.Float(1), obs.Float(2), obs.Float(3), obs.Float(9), obs.Float(15)},
	}
)

// Simple pass-through tables.
var (
	LowCloudType0513       = &SimpleTable{Table: "0513", Width: 1, Min: 0, Max: 9}
	MiddleCloudType0515    = &SimpleTable{Table: "0515", Width: 1, Min: 0, Max: 9}
	HighCloudType0509      = &SimpleTable{Table: "0509", Width: 1, Min: 0, Max: 9}
	PressureTendency0200   = &SimpleTable{Table: "0200", Width: 1, Min: 0, Max: 8}
	GroundStateBare0901    = &SimpleTable{Table: "0901", Width: 1, Min: 0, Max: 9}
	GroundStateSnow0975    = &SimpleTable{Table: "0975", Width: 1, Min: 0, Max: 9}
	IceConcentration0639   = &SimpleTable{Table: "0639", Width: 1, Min: 0, Max: 9}
	IceDevelopment3739     = &SimpleTable{Table: "3739", Width: 1, Min: 0, Max: 9}
	IceLandOrigin0439      = &SimpleTable{Table: "0439", Width: 1, Min: 0, Max: 9}
	IceConditionTrend5239  = &SimpleTable{Table: "5239", Width: 1, Min: 0, Max: 9}
	FrozenDepositTime3955  = &SimpleTable{Table: "3955", Width: 1, Min: 0, Max: 9}
	DriftSnowPhenomena3766 = &SimpleTable{Table: "3766", Width: 1, Min: 0, Max: 9}
	DriftSnowEvolution3776 = &SimpleTable{Table: "3776", Width: 1, Min: 0, Max: 7}
	MountainCondition2745  = &SimpleTable{Table: "2745", Width: 1, Min: 0, Max: 9}
	MirageType0101         = &SimpleTable{Table: "0101", Width: 1, Min: 0, Max: 9}
	TropicalSkyState430    = &SimpleTable{Table: "430", Width: 1, Min: 0, Max: 9}
	VisibilityVariation4332 = &SimpleTable{Table: "4332", Width: 1, Min: 0, Max: 9}
)

// Range tables.
var (
	// LowestCloudBase1600 is the height above surface of the base of the
	// lowest cloud.
	LowestCloudBase1600 = &RangeTable{
		Table: "1600", Width: 1, OpenQuantifier: obs.IsGreaterOrEqual,
		Ranges: []Range{
			{0, obs.Float(50)}, {50, obs.Float(100)}, {100, obs.Float(200)},
			{200, obs.Float(300)}, {300, obs.Float(600)}, {600, obs.Float(1000)},
			{1000, obs.Float(1500)}, {1500, obs.Float(2000)}, {2000, obs.Float(2500)},
			{2500, nil},
		},
	}

	// SeaVisibility4300 is visibility seawards from a coastal station.
	SeaVisibility4300 = &RangeTable{
		Table: "4300", Width: 1, OpenQuantifier: obs.IsGreater,
		Ranges: []Range{
			{0, obs.Float(50)}, {50, obs.Float(200)}, {200, obs.Float(500)},
			{500, obs.Float(1000)}, {1000, obs.Float(2000)}, {2000, obs.Float(4000)},
			{4000, obs.Float(10000)}, {10000, obs.Float(20000)}, {20000, obs.Float(50000)},
			{50000, nil},
		},
	}

	// CommencementTime4055 is the time of commencement of a phenomenon
	// before the hour of observation.
	CommencementTime4055 = &RangeTable{
		Table: "4055", Unit: "min", Width: 1,
		Ranges: []Range{
			{0, obs.Float(30)}, {30, obs.Float(60)}, {60, obs.Float(90)},
			{90, obs.Float(120)}, {120, obs.Float(150)}, {150, obs.Float(180)},
			{180, obs.Float(210)}, {210, obs.Float(240)}, {240, obs.Float(300)},
			{300, obs.Float(360)},
		},
	}
)
