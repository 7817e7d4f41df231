package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
)

// InitCmd implements the 'init' command. Besides the configuration file it
// scaffolds the posts and static directories with a first post so that
// 'blogbuilder build' succeeds immediately.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

const samplePost = `---
title: "Hello, world"
date: %s
tags: [meta]
draft: false
---

# Hello, world

This is your first post. Edit or delete it, then run ` + "`blogbuilder build`" + `.
`

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	fmt.Println("Initializing blog workspace")
	fmt.Printf("Writing configuration to %s\n", root.ConfigPath())

	if err := config.Init(root.ConfigPath(), i.Force); err != nil {
		return err
	}

	for _, dir := range []string{"posts", "static"} {
		if err := os.MkdirAll(filepath.Join(root.Dir, dir), 0o755); err != nil {
			return fmt.Errorf("create %s directory: %w", dir, err)
		}
	}

	postPath := filepath.Join(root.Dir, "posts", "hello-world.md")
	if _, err := os.Stat(postPath); os.IsNotExist(err) {
		content := fmt.Sprintf(samplePost, time.Now().UTC().Format("2006-01-02"))
		if err := os.WriteFile(postPath, []byte(content), 0o644); err != nil {
			return fmt.Errorf("write sample post: %w", err)
		}
		fmt.Printf("Wrote sample post to %s\n", postPath)
	}

	fmt.Println("initialized successfully")
	return nil
}
