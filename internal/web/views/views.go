// Package views renders the server's HTML surface. Components are
// hand-built templ.ComponentFunc values so the build needs no generate
// step.
package views

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"

	"github.com/karstvale/tile-region-engine/internal/protocol"
)

// IndexData is everything the map page needs for first paint; the page
// fetches tile data and live updates itself.
type IndexData struct {
	Stats   protocol.StatsLite
	Objects map[string]int
	Clients int
}

// IndexPage renders the region map viewer.
func IndexPage(data IndexData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		statsJSON, err := json.Marshal(data.Stats)
		if err != nil {
			return err
		}

		var b strings.Builder
		b.WriteString(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Region Map</title>
<style>
  body { margin: 0; background: #101018; color: #cfd2e0; font: 14px/1.5 monospace; }
  header { padding: 10px 16px; border-bottom: 1px solid #2a2a3a; display: flex; gap: 24px; flex-wrap: wrap; }
  #map { display: block; margin: 16px auto; border: 1px solid #2a2a3a; image-rendering: pixelated; cursor: crosshair; }
  #panel { max-width: 960px; margin: 0 auto 24px; padding: 0 16px; }
  #events { list-style: none; padding: 0; max-height: 160px; overflow-y: auto; }
  #events li { border-bottom: 1px solid #1c1c28; padding: 2px 0; }
  label { margin-right: 12px; }
  .stat b { color: #8fd3a6; }
</style>
</head>
<body>
<header>
`)
		fmt.Fprintf(&b, `  <span class="stat">grid <b>%d&times;%d</b> (%s tiles, chunk %d)</span>`+"\n",
			data.Stats.Cols, data.Stats.Rows,
			humanize.Comma(int64(data.Stats.Cols)*int64(data.Stats.Rows)), data.Stats.ChunkSize)
		fmt.Fprintf(&b, `  <span class="stat">regions <b id="stat-regions">%s</b> (doors %d)</span>`+"\n",
			humanize.Comma(int64(data.Stats.Regions)), data.Stats.DoorRegions)
		fmt.Fprintf(&b, `  <span class="stat">links <b id="stat-links">%s</b></span>`+"\n",
			humanize.Comma(int64(data.Stats.Links)))
		fmt.Fprintf(&b, `  <span class="stat">rooms <b id="stat-rooms">%d</b></span>`+"\n", data.Stats.Rooms)
		fmt.Fprintf(&b, `  <span class="stat">objects <b>%s</b></span>`+"\n", objectSummary(data.Objects))
		fmt.Fprintf(&b, `  <span class="stat">clients <b>%d</b></span>`+"\n", data.Clients)
		b.WriteString(`</header>
<canvas id="map"></canvas>
<div id="panel">
  <div>
    <label><input type="radio" name="op" value="wall" checked> wall</label>
    <label><input type="radio" name="op" value="clear"> clear</label>
    <label><input type="radio" name="op" value="door"> door</label>
    <label><input type="radio" name="op" value="openDoor"> open door</label>
    <label><input type="radio" name="op" value="sealDoor"> seal door</label>
    <label><input type="radio" name="op" value="removeDoor"> remove door</label>
    <span>drag on the map to apply; shift-click sets A, alt-click sets B for a reachability probe</span>
  </div>
  <p id="probe"></p>
  <ul id="events"></ul>
</div>
<script>
var stats = `)
		b.Write(statsJSON)
		b.WriteString(`;
` + indexScript + `</script>
</body>
</html>
`)
		_, err = io.WriteString(w, b.String())
		return err
	})
}

func objectSummary(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		parts = append(parts, fmt.Sprintf("%s %s", humanize.Comma(int64(counts[k])), k))
	}
	return strings.Join(parts, ", ")
}

const indexScript = `
var canvas = document.getElementById('map');
var ctx = canvas.getContext('2d');
var scale = Math.max(4, Math.min(12, Math.floor(960 / stats.cols)));
canvas.width = stats.cols * scale;
canvas.height = stats.rows * scale;

var tiles = null, doors = [], objects = [];
var probeA = null, probeB = null;

function colorFor(id) {
  if (id < 0) { return '#181820'; }
  return 'hsl(' + ((id * 47) % 360) + ', 55%, 42%)';
}

function draw() {
  if (!tiles) { return; }
  for (var y = 0; y < stats.rows; y++) {
    for (var x = 0; x < stats.cols; x++) {
      ctx.fillStyle = colorFor(tiles[y * stats.cols + x]);
      ctx.fillRect(x * scale, y * scale, scale, scale);
    }
  }
  ctx.strokeStyle = 'rgba(255,255,255,0.15)';
  for (var cx = stats.chunkSize; cx < stats.cols; cx += stats.chunkSize) {
    ctx.beginPath(); ctx.moveTo(cx * scale, 0); ctx.lineTo(cx * scale, canvas.height); ctx.stroke();
  }
  for (var cy = stats.chunkSize; cy < stats.rows; cy += stats.chunkSize) {
    ctx.beginPath(); ctx.moveTo(0, cy * scale); ctx.lineTo(canvas.width, cy * scale); ctx.stroke();
  }
  doors.forEach(function (d) {
    ctx.fillStyle = d.open ? '#e8d44d' : '#7a4a20';
    ctx.fillRect(d.x * scale + 1, d.y * scale + 1, scale - 2, scale - 2);
  });
  objects.forEach(function (o) {
    ctx.fillStyle = o.kind === 'tree' ? '#4dc46a' : '#d88a3c';
    ctx.beginPath();
    ctx.arc(o.x * scale + scale / 2, o.y * scale + scale / 2, scale / 3, 0, Math.PI * 2);
    ctx.fill();
  });
  [probeA, probeB].forEach(function (p, i) {
    if (!p) { return; }
    ctx.strokeStyle = i === 0 ? '#ffffff' : '#ff5c5c';
    ctx.strokeRect(p.x * scale, p.y * scale, scale, scale);
  });
}

function refresh() {
  fetch('/debug/regions').then(function (r) { return r.json(); }).then(function (d) {
    tiles = d.tiles; doors = d.doors || [];
    return fetch('/debug/objects');
  }).then(function (r) { return r.json(); }).then(function (d) {
    objects = d.objects || [];
    draw();
  });
}

function setStats(s) {
  stats = s;
  document.getElementById('stat-regions').textContent = s.regions;
  document.getElementById('stat-links').textContent = s.links;
  document.getElementById('stat-rooms').textContent = s.rooms;
}

function logEvent(text) {
  var li = document.createElement('li');
  li.textContent = text;
  var list = document.getElementById('events');
  list.insertBefore(li, list.firstChild);
  while (list.children.length > 40) { list.removeChild(list.lastChild); }
}

function tileAt(ev) {
  var r = canvas.getBoundingClientRect();
  return {
    x: Math.floor((ev.clientX - r.left) / scale),
    y: Math.floor((ev.clientY - r.top) / scale)
  };
}

function probe() {
  if (!probeA || !probeB) { return; }
  var q = 'ax=' + probeA.x + '&ay=' + probeA.y + '&bx=' + probeB.x + '&by=' + probeB.y;
  fetch('/debug/reachable?' + q).then(function (r) { return r.json(); }).then(function (d) {
    document.getElementById('probe').textContent =
      'A(' + probeA.x + ',' + probeA.y + ') -> B(' + probeB.x + ',' + probeB.y + '): ' +
      (d.reachable ? 'reachable' : 'not reachable');
  });
}

var dragStart = null;
canvas.addEventListener('mousedown', function (ev) {
  if (ev.shiftKey || ev.altKey) { return; }
  dragStart = tileAt(ev);
});
canvas.addEventListener('mouseup', function (ev) {
  var p = tileAt(ev);
  if (ev.shiftKey) { probeA = p; draw(); probe(); return; }
  if (ev.altKey) { probeB = p; draw(); probe(); return; }
  if (!dragStart) { return; }
  var body = {
    op: document.querySelector('input[name="op"]:checked').value,
    minX: Math.min(dragStart.x, p.x), minY: Math.min(dragStart.y, p.y),
    maxX: Math.max(dragStart.x, p.x), maxY: Math.max(dragStart.y, p.y)
  };
  dragStart = null;
  fetch('/debug/terrain', {
    method: 'POST',
    headers: { 'Content-Type': 'application/json' },
    body: JSON.stringify(body)
  });
});

var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
var sock = new WebSocket(proto + location.host + '/stream');
sock.onmessage = function (msg) {
  var env = JSON.parse(msg.data);
  if (env.type === 'regionsRebuilt') {
    setStats(env.payload.stats);
    logEvent('#' + env.seq + ' rebuilt (' + env.payload.cause + ') in ' + env.payload.tookMicros + 'us');
    refresh();
    probe();
  } else if (env.type === 'terrainEdited') {
    logEvent('#' + env.seq + ' terrain ' + env.payload.op);
  } else if (env.type === 'objectPlaced' || env.type === 'objectRemoved') {
    logEvent('#' + env.seq + ' ' + env.type);
    refresh();
  }
};

refresh();
`
