// Package config provides configuration loading for vtree tools.
//
// Configuration is read from vtree.json or vtree.yaml in the working
// directory, then overridden by VTREE_* environment variables. Variables may
// also come from a .env file next to the config; the process environment
// wins over .env.
//
// # Configuration File Structure
//
//	{
//	  "frameInterval": "16ms",
//	  "tardyThreshold": "150ms",
//	  "hash": "xxhash",
//	  "shortCircuit": true,
//	  "log": {
//	    "level": "debug",
//	    "format": "json"
//	  },
//	  "preview": {
//	    "addr": "localhost:7331"
//	  },
//	  "export": {
//	    "target": "s3://site-bucket/previews/"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    errors.PrintError(err)
//	    os.Exit(1)
//	}
//	rt := vtree.NewRuntime(cfg.RuntimeOptions(logger)...)
package config
