package rules

// 规则常数表。Default() 给出标准规则；变体可用 JSON 覆盖文件加载。

type SupplyRules struct {
	InfantryCapacity          int     `json:"infantry_capacity"`
	NoncombatantCapacity      int     `json:"noncombatant_capacity"`
	CavalryCapacity           int     `json:"cavalry_capacity"`
	WagonCapacity             int     `json:"wagon_capacity"`
	InfantryConsumption       int     `json:"infantry_consumption"`
	NoncombatantConsumption   int     `json:"noncombatant_consumption"`
	CavalryConsumption        int     `json:"cavalry_consumption"`
	WagonConsumption          int     `json:"wagon_consumption"`
	BaseNoncombatantRatio     float64 `json:"base_noncombatant_ratio"`
	SpartanRatio              float64 `json:"spartan_ratio"`
	ExclusiveSkirmisherRatio  float64 `json:"exclusive_skirmisher_ratio"`
	ForagingMultiplier        int     `json:"foraging_multiplier"`
	ForagingLimitPerSeason    int     `json:"foraging_limit_per_season"`
	TorchRevoltChance         int     `json:"torch_revolt_chance"`          // 六分之 N
	ForageRevoltChanceRepeat  int     `json:"forage_revolt_chance_repeat"`  // 六分之 N
	TorchRevoltHostileModifier int    `json:"torch_revolt_hostile_modifier"`
	ForageRevoltHostileModifier int   `json:"forage_revolt_hostile_modifier"`
	RevoltCooldownDays        int     `json:"revolt_cooldown_days"`
	WizardSupplyEncumbrance   int     `json:"wizard_supply_encumbrance"`
}

type MoraleRules struct {
	DefaultResting               int `json:"default_resting"`
	DefaultMax                   int `json:"default_max"`
	ForcedMarchMoraleLossPerWeek int `json:"forced_march_morale_loss_per_week"`
	StarvationMoraleLossPerDay   int `json:"starvation_morale_loss_per_day"`
	StarvationDissolutionDays    int `json:"starvation_dissolution_days"`
}

type MovementRules struct {
	RoadStandardMilesPerDay    int     `json:"road_standard_miles_per_day"`
	RoadForcedMilesPerDay      int     `json:"road_forced_miles_per_day"`
	OffroadStandardMilesPerDay int     `json:"offroad_standard_miles_per_day"`
	OffroadForcedMilesPerDay   int     `json:"offroad_forced_miles_per_day"`
	NightMilesPerDay           int     `json:"night_miles_per_day"`
	NightForcedMilesPerDay     int     `json:"night_forced_miles_per_day"`
	CavalryForcedMultiplier    int     `json:"cavalry_forced_multiplier"`
	ColumnLengthThreshold      float64 `json:"column_length_threshold"`
	ColumnCappedStandardSpeed  int     `json:"column_capped_standard_speed"`
	ColumnCappedForcedSpeed    int     `json:"column_capped_forced_speed"`
	NightWrongPathChance       int     `json:"night_wrong_path_chance"` // 六分之 N
}

type VisibilityRules struct {
	BaseRadius             int `json:"base_radius"`
	CavalryBonus           int `json:"cavalry_bonus"`
	OutriderBonus          int `json:"outrider_bonus"`
	BadWeatherPenalty      int `json:"bad_weather_penalty"`
	VeryBadWeatherPenalty  int `json:"very_bad_weather_penalty"`
}

type RevoltOutcomeRules struct {
	InfantryDieSize    int `json:"infantry_die_size"`
	InfantryMultiplier int `json:"infantry_multiplier"`
}

type BattleRules struct {
	RoutThreshold              int     `json:"rout_threshold"`
	RetreatHexesMin            int     `json:"retreat_hexes_min"`
	RetreatHexesMax            int     `json:"retreat_hexes_max"`
	RetreatSupplyLossDie       int     `json:"retreat_supply_loss_die"`
	RetreatSupplyLossMultiplier int    `json:"retreat_supply_loss_multiplier"`
	CaptureChanceMinor         int     `json:"capture_chance_minor"` // 六分之 N，差 4~5
	CaptureChanceMajor         int     `json:"capture_chance_major"` // 六分之 N，差 6+
	MoralePenaltyOnRout        int     `json:"morale_penalty_on_rout"`
	LootCaptureFraction        float64 `json:"loot_capture_fraction"`
	MultiSideNumericBonusRatio float64 `json:"multi_side_numeric_bonus_ratio"`
}

type SiegeRules struct {
	TownThreshold                     int `json:"town_threshold"`
	CityThreshold                     int `json:"city_threshold"`
	FortressThreshold                 int `json:"fortress_threshold"`
	DefaultModifier                   int `json:"default_modifier"` // 每周
	DiseaseModifier                   int `json:"disease_modifier"`
	ResupplyModifier                  int `json:"resupply_modifier"`
	AttackedModifier                  int `json:"attacked_modifier"`
	SiegeEngineReductionPerDetachment int `json:"siege_engine_reduction_per_detachment"`
	StarvationThreshold               int `json:"starvation_threshold"`
	SurrenderCheckTarget              int `json:"surrender_check_target"`
}

type NavalRules struct {
	FriendlyMilesPerDay    int     `json:"friendly_miles_per_day"`
	HostileMilesPerDay     int     `json:"hostile_miles_per_day"`
	EmbarkDays             int     `json:"embark_days"`
	DisembarkDays          int     `json:"disembark_days"`
	RiverineMilesPerDay    int     `json:"riverine_miles_per_day"`
	BlockadeSupplyModifier float64 `json:"blockade_supply_modifier"`
}

type MessagingRules struct {
	FriendlySuccessNumerator   int `json:"friendly_success_numerator"`
	FriendlySuccessDenominator int `json:"friendly_success_denominator"`
	HostileSuccessNumerator    int `json:"hostile_success_numerator"`
	HostileSuccessDenominator  int `json:"hostile_success_denominator"`
	FriendlyMilesPerDay        int `json:"friendly_miles_per_day"`
	HostileMilesPerDay         int `json:"hostile_miles_per_day"`
	NeutralMilesPerDay         int `json:"neutral_miles_per_day"`
}

type MercenaryRules struct {
	InfantryUpkeepPerDay       int `json:"infantry_upkeep_per_day"`
	CavalryUpkeepPerDay        int `json:"cavalry_upkeep_per_day"`
	GraceDaysWithoutPay        int `json:"grace_days_without_pay"`
	MoralePenaltyUnpaid        int `json:"morale_penalty_unpaid"`
	DesertionChanceNumerator   int `json:"desertion_chance_numerator"`
	DesertionChanceDenominator int `json:"desertion_chance_denominator"`
}

type RecruitmentRules struct {
	MusterDurationDays      int `json:"muster_duration_days"`
	RecruitmentCooldownDays int `json:"recruitment_cooldown_days"`
	RevoltChance            int `json:"revolt_chance"` // 六分之 N
	RecentlyConqueredDays   int `json:"recently_conquered_days"`
}

type OperationsRules struct {
	BaseSuccessTarget        int `json:"base_success_target"`
	SimpleModifier           int `json:"simple_modifier"`
	ComplexModifier          int `json:"complex_modifier"`
	HostileTerritoryModifier int `json:"hostile_territory_modifier"`
	LootCostDefault          int `json:"loot_cost_default"`
}

// Config 汇总所有子系统的规则常数。
type Config struct {
	Supply        SupplyRules        `json:"supply"`
	Morale        MoraleRules        `json:"morale"`
	Movement      MovementRules      `json:"movement"`
	Visibility    VisibilityRules    `json:"visibility"`
	RevoltOutcome RevoltOutcomeRules `json:"revolt_outcome"`
	Battle        BattleRules        `json:"battle"`
	Siege         SiegeRules         `json:"siege"`
	Naval         NavalRules         `json:"naval"`
	Messaging     MessagingRules     `json:"messaging"`
	Mercenaries   MercenaryRules     `json:"mercenaries"`
	Operations    OperationsRules    `json:"operations"`
	Recruitment   RecruitmentRules   `json:"recruitment"`
}

// Default 返回标准规则常数表。
func Default() *Config {
	return &Config{
		Supply: SupplyRules{
			InfantryCapacity:            15,
			NoncombatantCapacity:        15,
			CavalryCapacity:             75,
			WagonCapacity:               1000,
			InfantryConsumption:         1,
			NoncombatantConsumption:     1,
			CavalryConsumption:          10,
			WagonConsumption:            10,
			BaseNoncombatantRatio:       0.25,
			SpartanRatio:                0.125,
			ExclusiveSkirmisherRatio:    0.10,
			ForagingMultiplier:          500,
			ForagingLimitPerSeason:      5,
			TorchRevoltChance:           1,
			ForageRevoltChanceRepeat:    2,
			TorchRevoltHostileModifier:  1,
			ForageRevoltHostileModifier: 1,
			RevoltCooldownDays:          365,
			WizardSupplyEncumbrance:     1000,
		},
		Morale: MoraleRules{
			DefaultResting:               9,
			DefaultMax:                   12,
			ForcedMarchMoraleLossPerWeek: 1,
			StarvationMoraleLossPerDay:   1,
			StarvationDissolutionDays:    14,
		},
		Movement: MovementRules{
			RoadStandardMilesPerDay:    12,
			RoadForcedMilesPerDay:      18,
			OffroadStandardMilesPerDay: 6,
			OffroadForcedMilesPerDay:   9,
			NightMilesPerDay:           6,
			NightForcedMilesPerDay:     12,
			CavalryForcedMultiplier:    2,
			ColumnLengthThreshold:      6.0,
			ColumnCappedStandardSpeed:  6,
			ColumnCappedForcedSpeed:    12,
			NightWrongPathChance:       2,
		},
		Visibility: VisibilityRules{
			BaseRadius:            1,
			CavalryBonus:          1,
			OutriderBonus:         1,
			BadWeatherPenalty:     1,
			VeryBadWeatherPenalty: 2,
		},
		RevoltOutcome: RevoltOutcomeRules{
			InfantryDieSize:    20,
			InfantryMultiplier: 500,
		},
		Battle: BattleRules{
			RoutThreshold:               2,
			RetreatHexesMin:             1,
			RetreatHexesMax:             6,
			RetreatSupplyLossDie:        6,
			RetreatSupplyLossMultiplier: 10,
			CaptureChanceMinor:          1,
			CaptureChanceMajor:          2,
			MoralePenaltyOnRout:         2,
			LootCaptureFraction:         0.5,
			MultiSideNumericBonusRatio:  0.1,
		},
		Siege: SiegeRules{
			TownThreshold:                     10,
			CityThreshold:                     15,
			FortressThreshold:                 20,
			DefaultModifier:                   -1,
			DiseaseModifier:                   -1,
			ResupplyModifier:                  2,
			AttackedModifier:                  1,
			SiegeEngineReductionPerDetachment: 1,
			StarvationThreshold:               0,
			SurrenderCheckTarget:              12,
		},
		Naval: NavalRules{
			FriendlyMilesPerDay:    48,
			HostileMilesPerDay:     36,
			EmbarkDays:             1,
			DisembarkDays:          1,
			RiverineMilesPerDay:    36,
			BlockadeSupplyModifier: 0.5,
		},
		Messaging: MessagingRules{
			FriendlySuccessNumerator:   19,
			FriendlySuccessDenominator: 20,
			HostileSuccessNumerator:    5,
			HostileSuccessDenominator:  6,
			FriendlyMilesPerDay:        48,
			HostileMilesPerDay:         36,
			NeutralMilesPerDay:         42,
		},
		Mercenaries: MercenaryRules{
			InfantryUpkeepPerDay:       1,
			CavalryUpkeepPerDay:        3,
			GraceDaysWithoutPay:        3,
			MoralePenaltyUnpaid:        1,
			DesertionChanceNumerator:   1,
			DesertionChanceDenominator: 6,
		},
		Operations: OperationsRules{
			BaseSuccessTarget:        7,
			SimpleModifier:           2,
			ComplexModifier:          -2,
			HostileTerritoryModifier: -1,
			LootCostDefault:          100,
		},
		Recruitment: RecruitmentRules{
			MusterDurationDays:      30,
			RecruitmentCooldownDays: 365,
			RevoltChance:            1,
			RecentlyConqueredDays:   90,
		},
	}
}
