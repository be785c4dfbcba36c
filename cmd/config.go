package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli"
	"github.com/vgarleanu/raytracer/output"
)

// Environment variables holding the object storage settings.
const (
	envS3AccessKey = "RT_S3_ACCESS_KEY"
	envS3SecretKey = "RT_S3_SECRET_KEY"
	envS3Endpoint  = "RT_S3_ENDPOINT"
	envS3Region    = "RT_S3_REGION"
	envS3Bucket    = "RT_S3_BUCKET"

	defaultS3Region = "us-east-1"
)

// Load environment overrides from a dotenv file. Variables that are already
// set take precedence and a missing file is not an error.
func LoadEnv(args []string) error {
	filename := envFileFromArgs(args)
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(filename)
}

// Scan the raw command line for the global --env flag. The dotenv file must
// be loaded before the cli package resolves EnvVar flag values so it cannot
// be read from the parsed context.
func envFileFromArgs(args []string) string {
	filename := ".env"
	for idx := 1; idx < len(args); idx++ {
		arg := args[idx]
		switch {
		case arg == "--":
			return filename
		case (arg == "--env" || arg == "-env") && idx+1 < len(args):
			return args[idx+1]
		case len(arg) > 6 && arg[:6] == "--env=":
			return arg[6:]
		case len(arg) > 5 && arg[:5] == "-env=":
			return arg[5:]
		}
	}
	return filename
}

// Build the s3 uploader settings from the environment.
func uploaderConfig(ctx *cli.Context) output.UploaderConfig {
	cfg := output.UploaderConfig{
		AccessKey: os.Getenv(envS3AccessKey),
		SecretKey: os.Getenv(envS3SecretKey),
		Endpoint:  os.Getenv(envS3Endpoint),
		Region:    os.Getenv(envS3Region),
		Bucket:    os.Getenv(envS3Bucket),
		ACL:       ctx.String("s3-acl"),
	}
	if cfg.Region == "" {
		cfg.Region = defaultS3Region
	}
	return cfg
}
