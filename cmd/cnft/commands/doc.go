// Package commands defines the cnft CLI and wires dependencies for subcommands.
//
// Commands
//
//   - keygen             Generate the payer keypair and store it encrypted
//   - import-keypair     Import a Solana CLI keypair file into the keystore
//   - export-keypair     Write the payer keypair as a Solana CLI keypair file
//   - address            Print the payer address
//   - balance            Print an account balance in SOL
//   - airdrop            Request devnet/testnet SOL for the payer
//   - config             Print the effective configuration
//   - metadata render    Render collection or item off-chain JSON
//   - metadata check     Fetch and validate the configured metadata URLs
//   - collection create  Mint the collection NFT
//   - collection list    List recorded collections
//   - tree cost          Print the size and rent of the configured tree
//   - tree create        Allocate a Merkle tree
//   - tree list          List recorded trees
//   - mint               Mint compressed NFTs to recipients
//   - receipts           List recorded mints
//
// # Implementation
//
// The root command loads the configuration, applies flag overrides, configures
// logging and builds the dependency graph (stores, RPC client, services)
// before any subcommand runs. Handlers share it through appCtx and receive a
// context that is cancelled on interrupt.
package commands
