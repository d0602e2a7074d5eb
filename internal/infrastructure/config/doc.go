// Package config loads and validates the smart home service configuration.
//
// Values come from defaults, then a YAML file, then SMARTHOME_*
// environment variables. Secrets (JWT secret, admin password hash, broker
// and InfluxDB credentials) are expected from the environment.
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.House.ID)
package config
