package intake

// Version is the release of the intake module, overridden at link time with
// -ldflags "-X github.com/aretw0/intake.Version=...".
var Version = "0.1.0-dev"
