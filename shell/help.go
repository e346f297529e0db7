package shell

import (
	"embed"
	"io"
)

//go:embed helptext/*.txt
var helptext embed.FS

var helpTopics = []string{"new", "play", "ai", "best", "set", "load", "autoplay", "script"}

func usage(w io.Writer) {
	dat, err := helptext.ReadFile("helptext/usage.txt")
	if err != nil {
		io.WriteString(w, "Error loading helptext: "+err.Error())
		return
	}
	w.Write(dat)
}

func usageTopic(w io.Writer, topic string) {
	dat, err := helptext.ReadFile("helptext/" + topic + ".txt")
	if err != nil {
		io.WriteString(w, "There is no help text for the topic "+topic+"\n")
		return
	}
	w.Write(dat)
}
