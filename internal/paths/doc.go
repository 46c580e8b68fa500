// Provides platform-appropriate paths for the kiln CLI.
//
// All paths follow XDG conventions on Linux and platform-native conventions
// on macOS and Windows. The tool name "kiln" is used as the subdirectory
// under each base path.
package paths
