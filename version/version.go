package version

// Version is the current safespeak release version
const Version = "0.1.0"
