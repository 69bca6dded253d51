// Package main is the entry point for fzadmin, the tool used to review
// provider documents and load approved freezone packages into the vector store.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/shubham-309/chatbot/cmd/fzadmin/internal/commands"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "fzadmin",
		Short: "Freezone package administration",
		Long: `fzadmin extracts freezone packages from provider documents (.xlsx, .pdf)
into a JSON file for review, and ingests the reviewed file into the vector store.

Set "approved": false on any entry that must not be ingested.

Configuration is read from the environment (and .env):
- OPENAI_API_KEY, OPENAI_CHAT_MODEL, OPENAI_EMBEDDING_MODEL
- VECTOR_STORE, PINECONE_API_KEY, PINECONE_INDEX_NAME, PINECONE_NAMESPACE`,
		SilenceUsage: true,
	}

	commands.InitDocumentCommands(rootCmd, commands.DefaultHandlerFactory)

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
