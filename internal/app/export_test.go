package app

var SeedFirstAdmin = seedFirstAdmin
