package config

// SetDefaults applies default values for any missing configuration
func SetDefaults(cfg *Config) {
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = "caveplan.db"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 10
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}

	if cfg.Server.Listen == "" {
		cfg.Server.Listen = "127.0.0.1:8480"
	}

	applyDiveDefaults(&cfg.Defaults)
}

// applyDiveDefaults fills the seed values used when no standing
// configuration has been saved yet
func applyDiveDefaults(d *DiveDefaults) {
	if d.ConsumptionRate == 0 {
		d.ConsumptionRate = 20
	}
	if d.SwimSpeed == 0 {
		d.SwimSpeed = 10
	}
	if d.TankVolume == 0 {
		d.TankVolume = 22
	}
	if d.FillPressure == 0 {
		d.FillPressure = 220
	}
	if d.StageTime == 0 {
		d.StageTime = 5
	}
}
