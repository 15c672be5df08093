// Package commands defines the courier CLI and wires dependencies for subcommands.
//
// Commands
//
//   - init             Create a local identity and print its recovery phrase
//   - recover          Restore an identity from a recovery phrase
//   - whoami           Print the identity public key
//   - send             Encrypt and send a message to a peer
//   - messages         Fetch and decrypt a conversation
//   - delete           Delete specific messages you wrote
//   - clear            Delete your whole side of a conversation
//   - follow           Record a followed user under your namespace
//   - unfollow         Remove a followed user
//   - follows          List followed users with their published names
//   - profile          Print a profile document
//   - publish-profile  Publish your own profile document
//
// # Implementation
//
// The root command loads the YAML config, builds the dependency graph
// (keystore, homeserver client, services) before any subcommand runs, and
// signs in to the homeserver lazily for commands that write.
package commands
