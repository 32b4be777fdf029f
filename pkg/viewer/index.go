package viewer

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<title>camview</title>
<style>
body { background: #222; margin: 0; display: flex; height: 100vh; align-items: center; justify-content: center; }
canvas { width: 512px; height: 256px; image-rendering: pixelated; background: #fff; }
</style>
</head>
<body>
<canvas id="screen" width="128" height="64"></canvas>
<script>
(function() {
  var canvas = document.getElementById('screen');
  var ctx = canvas.getContext('2d');
  var img = ctx.createImageData(128, 64);
  function show(pix) {
    for (var i = 0; i < 128 * 64; i++) {
      var on = (pix[i >> 3] >> (7 - (i & 7))) & 1;
      var v = on ? 0 : 255;
      img.data[i * 4] = v;
      img.data[i * 4 + 1] = v;
      img.data[i * 4 + 2] = v;
      img.data[i * 4 + 3] = 255;
    }
    ctx.putImageData(img, 0, 0);
  }
  function connect() {
    var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
    var ws = new WebSocket(proto + location.host + '/ws');
    ws.binaryType = 'arraybuffer';
    ws.onmessage = function(ev) { show(new Uint8Array(ev.data)); };
    ws.onclose = function() { setTimeout(connect, 1000); };
  }
  connect();
})();
</script>
</body>
</html>
`
