package cli

var PageURL = pageURL
